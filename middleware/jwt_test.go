package middleware

import (
	"elearn/config"
	"elearn/models"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func newAuthTestApp(t *testing.T) *fiber.App {
	t.Helper()
	config.AppConfig = &config.Config{JWTKey: "test-secret"}

	app := fiber.New()
	app.Get("/protected", JWTMiddleware, func(c *fiber.Ctx) error {
		userID, ok := c.Locals("userId").(uint)
		if !ok {
			return JsonResponse(c, fiber.StatusInternalServerError, false, "userId missing from context", nil)
		}
		role, _ := c.Locals("role").(string)
		return JsonResponse(c, fiber.StatusOK, true, "ok", fiber.Map{
			"user_id": userID,
			"role":    role,
		})
	})
	return app
}

func TestJWTMiddleware_AcceptsGeneratedToken(t *testing.T) {
	app := newAuthTestApp(t)

	token, err := GenerateJWT(42, "tester", models.RoleInstructor, "tester@test.test")
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 with a valid token, got %d", resp.StatusCode)
	}
}

func TestJWTMiddleware_RejectsBadRequests(t *testing.T) {
	app := newAuthTestApp(t)

	cases := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"wrong scheme", "Basic abc123"},
		{"garbage token", "Bearer not.a.jwt"},
	}

	for _, tc := range cases {
		req := httptest.NewRequest("GET", "/protected", nil)
		if tc.header != "" {
			req.Header.Set("Authorization", tc.header)
		}
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("%s: request failed: %v", tc.name, err)
		}
		if resp.StatusCode != fiber.StatusUnauthorized {
			t.Fatalf("%s: expected 401, got %d", tc.name, resp.StatusCode)
		}
	}
}

func TestJWTMiddleware_RejectsTokenSignedWithOtherKey(t *testing.T) {
	config.AppConfig = &config.Config{JWTKey: "other-secret"}
	token, err := GenerateJWT(7, "tester", models.RoleUser, "tester@test.test")
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	// App validates against a different key
	app := newAuthTestApp(t)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401 for a foreign-key token, got %d", resp.StatusCode)
	}
}
