package verify

import (
	"bitbucket.org/sotavant/moodle-alexa-skill/internal/logger"
	"context"
	"crypto"
	"crypto/rsa"
	"crypto/sha1"
	"crypto/subtle"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"errors"
	"fmt"
	"go.uber.org/zap"
	"math/big"
	"net/url"
	"path"
	"strings"
	"time"
)

const (
	CertHost           = "s3.amazonaws.com"
	CertPathPrefix     = "/echo.api/"
	DefaultTrustedHost = "echo-api.amazon.com"
)

type Option func(*Verifier)

// WithTrustedHost задаёт имя, которое должно быть в subjectAltName сертификата.
func WithTrustedHost(host string) Option {
	return func(v *Verifier) {
		v.trustedHost = strings.TrimSpace(host)
	}
}

func WithCache(c Cache, ttl time.Duration) Option {
	return func(v *Verifier) {
		v.cache = c
		v.cacheTTL = ttl
	}
}

// WithChainVerification включает проверку цепочки до корня. При nil roots используются системные корни.
func WithChainVerification(roots *x509.CertPool) Option {
	return func(v *Verifier) {
		v.verifyChain = true
		v.roots = roots
	}
}

func WithClock(now func() time.Time) Option {
	return func(v *Verifier) {
		v.now = now
	}
}

// Verifier проверяет подлинность запроса голосовой платформы по подписи тела.
type Verifier struct {
	fetcher     Fetcher
	trustedHost string
	cache       Cache
	cacheTTL    time.Duration
	verifyChain bool
	roots       *x509.CertPool
	now         func() time.Time
}

func NewVerifier(f Fetcher, opts ...Option) *Verifier {
	v := &Verifier{
		fetcher:     f,
		trustedHost: DefaultTrustedHost,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Valid никогда не возвращает ошибку: любой сбой превращается в false.
func (v *Verifier) Valid(ctx context.Context, certURL, signature string, body []byte) bool {
	return v.Verify(ctx, certURL, signature, body) == nil
}

// Verify возвращает причину отказа, обёрнутую в ErrInvalidSignature или ErrUpstreamFetch.
func (v *Verifier) Verify(ctx context.Context, certURL, signature string, body []byte) (err error) {
	defer func() {
		if err != nil {
			logger.Log.Debug("signature verification failed",
				zap.String("cert_url", certURL),
				zap.Error(err),
			)
		}
	}()

	if err := checkCertURL(certURL); err != nil {
		return err
	}

	sig, err := base64.StdEncoding.DecodeString(signature)
	if err != nil || len(sig) == 0 {
		return fmt.Errorf("%w: signature is not base64", ErrInvalidSignature)
	}

	chain, err := v.loadChain(ctx, certURL)
	if err != nil {
		return err
	}
	leaf := chain[0]

	now := v.now()
	if now.Before(leaf.NotBefore) || now.After(leaf.NotAfter) {
		return fmt.Errorf("%w: certificate is outside its validity window", ErrInvalidSignature)
	}

	if !hasSubjectAltName(leaf, v.trustedHost) {
		return fmt.Errorf("%w: certificate is not issued for %s", ErrInvalidSignature, v.trustedHost)
	}

	if v.verifyChain {
		intermediates := x509.NewCertPool()
		for _, c := range chain[1:] {
			intermediates.AddCert(c)
		}
		_, err := leaf.Verify(x509.VerifyOptions{
			DNSName:       v.trustedHost,
			Roots:         v.roots,
			Intermediates: intermediates,
			CurrentTime:   now,
		})
		if err != nil {
			return fmt.Errorf("%w: untrusted certificate chain: %v", ErrInvalidSignature, err)
		}
	}

	pub, ok := leaf.PublicKey.(*rsa.PublicKey)
	if !ok {
		return fmt.Errorf("%w: certificate key is not RSA", ErrInvalidSignature)
	}

	digest := sha1.Sum(body)
	if err := rsa.VerifyPKCS1v15(pub, crypto.SHA1, digest[:], sig); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}

	if !decryptedDigestMatches(pub, sig, digest[:]) {
		return fmt.Errorf("%w: decrypted digest mismatch", ErrInvalidSignature)
	}

	return nil
}

func checkCertURL(raw string) error {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return fmt.Errorf("%w: bad certificate url: %v", ErrInvalidSignature, err)
	}
	if !strings.EqualFold(u.Scheme, "https") {
		return fmt.Errorf("%w: certificate url scheme is not https", ErrInvalidSignature)
	}
	if !strings.EqualFold(u.Hostname(), CertHost) {
		return fmt.Errorf("%w: certificate url host is not %s", ErrInvalidSignature, CertHost)
	}
	if u.Path == "" || !strings.HasPrefix(path.Clean(u.Path), CertPathPrefix) {
		return fmt.Errorf("%w: certificate url path is not under %s", ErrInvalidSignature, CertPathPrefix)
	}
	if p := u.Port(); p != "" && p != "443" {
		return fmt.Errorf("%w: certificate url port is not 443", ErrInvalidSignature)
	}
	return nil
}

func (v *Verifier) loadChain(ctx context.Context, certURL string) ([]*x509.Certificate, error) {
	if v.cache != nil {
		raw, err := v.cache.Get(ctx, certURL)
		switch {
		case err == nil:
			if chain, err := parseChain([]byte(raw)); err == nil {
				return chain, nil
			}
		case !isMiss(err):
			logger.Log.Warn("certificate cache read failed", zap.Error(err))
		}
	}

	raw, err := v.fetcher.Fetch(ctx, certURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstreamFetch, err)
	}

	chain, err := parseChain(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstreamFetch, err)
	}

	if v.cache != nil {
		if err := v.cache.Set(ctx, certURL, string(raw), v.cacheTTL); err != nil {
			logger.Log.Warn("certificate cache write failed", zap.Error(err))
		}
	}
	return chain, nil
}

// parseChain разбирает PEM-цепочку; первый сертификат подписывающий.
func parseChain(raw []byte) ([]*x509.Certificate, error) {
	var chain []*x509.Certificate
	for {
		var block *pem.Block
		block, raw = pem.Decode(raw)
		if block == nil {
			break
		}
		if block.Type != "CERTIFICATE" {
			continue
		}
		c, err := x509.ParseCertificate(block.Bytes)
		if err != nil {
			return nil, err
		}
		chain = append(chain, c)
	}
	if len(chain) == 0 {
		return nil, errors.New("no certificates in PEM data")
	}
	return chain, nil
}

func hasSubjectAltName(c *x509.Certificate, host string) bool {
	if host == "" {
		return false
	}
	for _, name := range c.DNSNames {
		if strings.EqualFold(name, host) {
			return true
		}
	}
	return false
}

// decryptedDigestMatches вскрывает подпись открытым ключом (s^e mod n)
// и сравнивает хвост блока с SHA-1 тела.
func decryptedDigestMatches(pub *rsa.PublicKey, sig, digest []byte) bool {
	if len(sig) != pub.Size() {
		return false
	}
	s := new(big.Int).SetBytes(sig)
	if s.Cmp(pub.N) >= 0 {
		return false
	}
	m := new(big.Int).Exp(s, big.NewInt(int64(pub.E)), pub.N)
	em := m.FillBytes(make([]byte, pub.Size()))
	return subtle.ConstantTimeCompare(em[len(em)-len(digest):], digest) == 1
}
