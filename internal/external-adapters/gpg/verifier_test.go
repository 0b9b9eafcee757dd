package gpg

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/ProtonMail/go-crypto/openpgp"
	"github.com/ProtonMail/go-crypto/openpgp/armor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// signedFixture creates a key pair, a data file and its armored detached signature
func signedFixture(t *testing.T, data []byte) (armoredKey, dataPath string, sig []byte) {
	t.Helper()

	entity, err := openpgp.NewEntity("zlint test", "", "test@example.com", nil)
	require.NoError(t, err)

	var keyBuf bytes.Buffer
	w, err := armor.Encode(&keyBuf, "PGP PUBLIC KEY BLOCK", nil)
	require.NoError(t, err)
	require.NoError(t, entity.Serialize(w))
	require.NoError(t, w.Close())

	var sigBuf bytes.Buffer
	require.NoError(t, openpgp.ArmoredDetachSign(&sigBuf, entity, bytes.NewReader(data), nil))

	dataPath = filepath.Join(t.TempDir(), "zlint-linux-x86_64")
	require.NoError(t, os.WriteFile(dataPath, data, 0600))

	return keyBuf.String(), dataPath, sigBuf.Bytes()
}

// serveSignature serves sig at the returned URL
func serveSignature(t *testing.T, sig []byte) string {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write(sig)
	}))
	t.Cleanup(server.Close)
	return server.URL + "/zlint-linux-x86_64.asc"
}

func TestVerifier_ImportArmoredKey(t *testing.T) {
	data := []byte("binary")
	key, dataPath, sig := signedFixture(t, data)

	v := NewVerifier()
	require.NoError(t, v.ImportArmoredKey(key))
	require.NoError(t, v.VerifySignature(context.Background(), dataPath, serveSignature(t, sig)))
}

func TestVerifier_ImportArmoredKey_Garbage(t *testing.T) {
	v := NewVerifier()
	err := v.ImportArmoredKey("-----BEGIN PGP PUBLIC KEY BLOCK-----\n\nmQENBGPexAMBCAC1kLz...\n-----END PGP PUBLIC KEY BLOCK-----")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read key")

	err = v.VerifySignature(context.Background(), "/tmp/file", "http://localhost/sig.asc")
	assert.ErrorContains(t, err, "no keys imported")
}

func TestVerifier_ImportKeyFromFile(t *testing.T) {
	data := []byte("binary")
	key, dataPath, sig := signedFixture(t, data)
	keyPath := filepath.Join(t.TempDir(), "key.asc")
	require.NoError(t, os.WriteFile(keyPath, []byte(key), 0600))

	v := NewVerifier()
	require.NoError(t, v.ImportKeyFromFile(keyPath))
	require.NoError(t, v.VerifySignature(context.Background(), dataPath, serveSignature(t, sig)))
}

func TestVerifier_ImportKeyFromFile_NonexistentFile(t *testing.T) {
	v := NewVerifier()

	err := v.ImportKeyFromFile("/nonexistent/key.asc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open key file")
}

func TestVerifier_VerifySignature_Tampered(t *testing.T) {
	data := []byte("#!/bin/sh\necho zlint\n")
	key, dataPath, sig := signedFixture(t, data)
	sigURL := serveSignature(t, sig)

	v := NewVerifier()
	require.NoError(t, v.ImportArmoredKey(key))
	require.NoError(t, v.VerifySignature(context.Background(), dataPath, sigURL))

	require.NoError(t, os.WriteFile(dataPath, []byte("tampered"), 0600))
	err := v.VerifySignature(context.Background(), dataPath, sigURL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "signature verification failed")
}

func TestVerifier_VerifySignature_Download(t *testing.T) {
	data := []byte("zlint release bytes")
	key, dataPath, sig := signedFixture(t, data)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/zlint-linux-x86_64.asc" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write(sig)
	}))
	defer server.Close()

	v := NewVerifier()
	require.NoError(t, v.ImportArmoredKey(key))

	require.NoError(t, v.VerifySignature(context.Background(), dataPath, server.URL+"/zlint-linux-x86_64.asc"))

	err := v.VerifySignature(context.Background(), dataPath, server.URL+"/missing.asc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 404")
}

func TestVerifier_WrongKey(t *testing.T) {
	data := []byte("zlint release bytes")
	_, dataPath, sig := signedFixture(t, data)
	otherKey, _, _ := signedFixture(t, data)

	v := NewVerifier()
	require.NoError(t, v.ImportArmoredKey(otherKey))
	assert.Error(t, v.VerifySignature(context.Background(), dataPath, serveSignature(t, sig)))
}

func TestVerifier_NoKeysImported(t *testing.T) {
	v := NewVerifier()

	err := v.VerifySignature(context.Background(), "/tmp/file", "http://localhost/sig.asc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no keys imported")
}
