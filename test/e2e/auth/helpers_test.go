package auth_test

import (
	"fmt"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"

	httpapi "github.com/billpoint/billpoint/internal/auth/http"
	"github.com/billpoint/billpoint/internal/auth/service"
	"github.com/billpoint/billpoint/internal/auth/store/drivers/sqlite"
	"github.com/billpoint/billpoint/pkg/authsdk"
	"github.com/billpoint/billpoint/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

/*
 * End-to-end tests run the full auth service in-process behind an httptest
 * server and drive it through the public SDK and session manager, the same
 * path the CLI and mobile client take.
 */

const (
	testIssuer   = "billpoint-auth-e2e"
	testPassword = "Sup3r secret passphrase"
)

// startService boots the full HTTP stack on an in-memory database and
// returns an SDK client pointed at it.
func startService(t *testing.T) *authsdk.Client {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	st, err := sqlite.NewStore(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	signer, verifier, err := jwtx.NewKeyPair(testIssuer)
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	router := httpapi.NewRouter("e2e", st, logger)
	router.AccountService = &service.AccountService{Store: st}
	router.TokenService = &service.TokenService{
		Signer:   signer,
		Verifier: verifier,
		Store:    st,
		Issuer:   testIssuer,
	}
	router.ApplyRoutes()

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return authsdk.NewClient(srv.URL)
}

func uniqueEmail(t *testing.T, n int) string {
	return fmt.Sprintf("%s-%d@example.com", strings.ToLower(strings.ReplaceAll(t.Name(), "/", "-")), n)
}

func signupParams(t *testing.T, n int) authsdk.SignupParams {
	return authsdk.SignupParams{
		Username: "e2e-user",
		Email:    uniqueEmail(t, n),
		Password: testPassword,
	}
}
