package http_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/lizmareco/distrisoft-sub002/internal/interfaces/http"
	pkgjwt "github.com/lizmareco/distrisoft-sub002/pkg/jwt"
)

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testDevUserID = "00000000-0000-0000-0000-0000000000ff"
	testIssuer    = "distrisoft-test"
	testExpMin    = 60
)

// buildTestApp construye una aplicación Fiber mínima con el AuthMiddleware y
// un handler que devuelve el user id resuelto.
func buildTestApp(cfg apphttp.AuthConfig) *fiber.App {
	app := fiber.New()
	app.Get("/protected",
		apphttp.AuthMiddleware(cfg),
		func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusOK).JSON(fiber.Map{
				"user_id": apphttp.GetUserID(c),
				"role":    apphttp.GetRole(c),
			})
		},
	)
	return app
}

func tokenFor(t *testing.T, userID, role string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, userID, role, testIssuer, testExpMin)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return "Bearer " + tok
}

func doRequest(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func prodConfig() apphttp.AuthConfig {
	return apphttp.AuthConfig{JWTSecret: testJWTSecret, Env: "production"}
}

func devConfig() apphttp.AuthConfig {
	return apphttp.AuthConfig{JWTSecret: testJWTSecret, Env: "development", DevUserID: testDevUserID}
}

func TestAuthMiddleware_TokenValidoPasa(t *testing.T) {
	app := buildTestApp(prodConfig())

	resp := doRequest(t, app, tokenFor(t, testUserID, "operario"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAuthMiddleware_SinTokenEnProduccionEs401(t *testing.T) {
	app := buildTestApp(prodConfig())

	resp := doRequest(t, app, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_SinTokenEnDesarrolloUsaUsuarioDev(t *testing.T) {
	app := buildTestApp(devConfig())

	resp := doRequest(t, app, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode,
		"en desarrollo la falta de token cae al usuario dev configurado")
}

func TestAuthMiddleware_SinTokenNiUsuarioDevEs401(t *testing.T) {
	cfg := devConfig()
	cfg.DevUserID = ""
	app := buildTestApp(cfg)

	resp := doRequest(t, app, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_TokenConFirmaIncorrectaEs401(t *testing.T) {
	app := buildTestApp(prodConfig())

	tok, err := pkgjwt.Generate("otro-secreto", testUserID, "operario", testIssuer, testExpMin)
	require.NoError(t, err)
	resp := doRequest(t, app, "Bearer "+tok)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_TokenExpiradoEs401(t *testing.T) {
	app := buildTestApp(prodConfig())

	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, "operario", testIssuer, -5)
	require.NoError(t, err)
	resp := doRequest(t, app, "Bearer "+tok)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_FormatoInvalidoEs401(t *testing.T) {
	app := buildTestApp(prodConfig())

	for _, header := range []string{"Basic abc123", "Bearer", "Bearer "} {
		resp := doRequest(t, app, header)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "header %q", header)
		resp.Body.Close()
	}
}

func TestAuthMiddleware_TokenValidoIgnoraUsuarioDev(t *testing.T) {
	// Con token presente, el usuario dev no interviene aunque esté configurado.
	app := buildTestApp(devConfig())

	resp := doRequest(t, app, tokenFor(t, testUserID, "admin"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
