package verify

import (
	"bitbucket.org/sotavant/moodle-alexa-skill/internal/logger"
	"bitbucket.org/sotavant/moodle-alexa-skill/internal/models"
	"context"
	"go.uber.org/zap"
	"net/http"
	"time"
)

const (
	HeaderSignature    = "Signature"
	HeaderCertChainURL = "SignatureCertChainUrl"
)

// Gate проверяет запрос до диспетчеризации: подпись, затем свежесть и идентификатор навыка.
type Gate struct {
	// Verifier == nil отключает проверку подписи (только для локальной отладки).
	Verifier      *Verifier
	ApplicationID string
	Now           func() time.Time
}

func (g *Gate) CheckSignature(ctx context.Context, h http.Header, body []byte) error {
	if g.Verifier == nil {
		return nil
	}

	if err := g.Verifier.Verify(ctx, h.Get(HeaderCertChainURL), h.Get(HeaderSignature), body); err != nil {
		logger.Log.Warn("request rejected", zap.Error(err))
		return err
	}
	return nil
}

func (g *Gate) CheckRequest(req models.Request) error {
	now := time.Now
	if g.Now != nil {
		now = g.Now
	}

	if !ValidTimestamp(req.Request.Timestamp, now()) {
		logger.Log.Warn("request rejected",
			zap.String("timestamp", req.Request.Timestamp),
			zap.Error(ErrStaleRequest),
		)
		return ErrStaleRequest
	}

	if !ValidApplicationID(req.ApplicationID(), g.ApplicationID) {
		logger.Log.Warn("request rejected",
			zap.String("application_id", req.ApplicationID()),
			zap.Error(ErrUnknownApplication),
		)
		return ErrUnknownApplication
	}

	return nil
}
