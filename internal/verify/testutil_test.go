package verify

import (
	"context"
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha1"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/base64"
	"encoding/pem"
	"github.com/stretchr/testify/require"
	"math/big"
	"sync"
	"testing"
	"time"
)

const testCertURL = "https://s3.amazonaws.com/echo.api/echo-api-cert-12.pem"

var (
	keyOnce sync.Once
	caKey   *rsa.PrivateKey
	leafKey *rsa.PrivateKey
	keyErr  error
)

// testKeys генерирует ключи один раз на пакет: RSA-2048 небыстрый.
func testKeys(t *testing.T) (*rsa.PrivateKey, *rsa.PrivateKey) {
	t.Helper()
	keyOnce.Do(func() {
		caKey, keyErr = rsa.GenerateKey(rand.Reader, 2048)
		if keyErr != nil {
			return
		}
		leafKey, keyErr = rsa.GenerateKey(rand.Reader, 2048)
	})
	require.NoError(t, keyErr)
	return caKey, leafKey
}

type testPKI struct {
	ca      *x509.Certificate
	roots   *x509.CertPool
	leafKey *rsa.PrivateKey
}

func newTestPKI(t *testing.T) *testPKI {
	t.Helper()
	ck, lk := testKeys(t)

	tmpl := &x509.Certificate{
		SerialNumber:          big.NewInt(1),
		Subject:               pkix.Name{CommonName: "Test Root"},
		NotBefore:             time.Now().Add(-24 * time.Hour),
		NotAfter:              time.Now().Add(24 * time.Hour),
		IsCA:                  true,
		BasicConstraintsValid: true,
		KeyUsage:              x509.KeyUsageCertSign | x509.KeyUsageDigitalSignature,
	}
	der, err := x509.CreateCertificate(rand.Reader, tmpl, tmpl, &ck.PublicKey, ck)
	require.NoError(t, err)
	ca, err := x509.ParseCertificate(der)
	require.NoError(t, err)

	roots := x509.NewCertPool()
	roots.AddCert(ca)

	return &testPKI{ca: ca, roots: roots, leafKey: lk}
}

// leafPEM выпускает подписывающий сертификат и возвращает цепочку leaf+CA в PEM.
func (p *testPKI) leafPEM(t *testing.T, notBefore, notAfter time.Time, dnsNames ...string) []byte {
	t.Helper()
	ck, _ := testKeys(t)

	tmpl := &x509.Certificate{
		SerialNumber: big.NewInt(2),
		Subject:      pkix.Name{CommonName: "echo-api.amazon.com"},
		NotBefore:    notBefore,
		NotAfter:     notAfter,
		DNSNames:     dnsNames,
		KeyUsage:     x509.KeyUsageDigitalSignature,
		ExtKeyUsage:  []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth},
	}
	der, err := x509.CreateCertificate(rand.Reader, tmpl, p.ca, &p.leafKey.PublicKey, ck)
	require.NoError(t, err)

	out := pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der})
	out = append(out, pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: p.ca.Raw})...)
	return out
}

func (p *testPKI) validPEM(t *testing.T) []byte {
	return p.leafPEM(t, time.Now().Add(-time.Hour), time.Now().Add(time.Hour), DefaultTrustedHost)
}

func (p *testPKI) sign(t *testing.T, body []byte) string {
	t.Helper()
	digest := sha1.Sum(body)
	sig, err := rsa.SignPKCS1v15(rand.Reader, p.leafKey, crypto.SHA1, digest[:])
	require.NoError(t, err)
	return base64.StdEncoding.EncodeToString(sig)
}

func staticFetcher(pemBytes []byte, calls *int) Fetcher {
	return FetcherFunc(func(_ context.Context, _ string) ([]byte, error) {
		if calls != nil {
			*calls++
		}
		return pemBytes, nil
	})
}
