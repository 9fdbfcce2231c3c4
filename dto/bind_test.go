package dto

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/jaikeex/cookhound-api/shared"
)

// bindApp routes a single POST endpoint through MakeHandler so the request
// scope exists, the way every production route is registered.
func bindApp(handler fiber.Handler) *fiber.App {
	app := fiber.New()
	app.Post("/", shared.MakeHandler(handler))
	app.Get("/", shared.MakeHandler(handler))
	return app
}

func TestParseBodyValid(t *testing.T) {
	var got RegisterRequest
	app := bindApp(func(c *fiber.Ctx) error {
		if err := ParseBody(c, &got); err != nil {
			return err
		}
		return shared.ResponseOK(c, nil)
	})

	body := `{"email":"user@example.com","username":"johndoe","password":"SecurePass123!"}`
	req := httptest.NewRequest("POST", "/", strings.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if got.Email != "user@example.com" || got.Username != "johndoe" {
		t.Errorf("decoded request = %+v", got)
	}
}

func TestParseBodySchemaFailure(t *testing.T) {
	app := bindApp(func(c *fiber.Ctx) error {
		var req RegisterRequest
		if err := ParseBody(c, &req); err != nil {
			return err
		}
		return shared.ResponseOK(c, nil)
	})

	body := `{"email":"nope","username":"johndoe","password":"SecurePass123!"}`
	req := httptest.NewRequest("POST", "/", strings.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != 400 {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestParseBodyWrongContentType(t *testing.T) {
	app := bindApp(func(c *fiber.Ctx) error {
		var req RegisterRequest
		if err := ParseBody(c, &req); err != nil {
			return err
		}
		return shared.ResponseOK(c, nil)
	})

	req := httptest.NewRequest("POST", "/", strings.NewReader("email=x"))
	req.Header.Set(fiber.HeaderContentType, "application/msgpack")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != 415 {
		t.Errorf("status = %d, want 415", resp.StatusCode)
	}
}

func TestParseQueryRepeatedKeys(t *testing.T) {
	var got ListRecipesQuery
	app := bindApp(func(c *fiber.Ctx) error {
		if err := ParseQuery(c, &got); err != nil {
			return err
		}
		return shared.ResponseOK(c, nil)
	})

	req := httptest.NewRequest("GET", "/?cuisine=italian&cuisine=vietnamese&difficulty=easy&page=2", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if len(got.Cuisines) != 2 {
		t.Errorf("cuisines = %v, want two entries", got.Cuisines)
	}
	if got.Page != 2 {
		t.Errorf("page = %d, want 2", got.Page)
	}
}

func TestParseQueryRejectsBadEnum(t *testing.T) {
	app := bindApp(func(c *fiber.Ctx) error {
		var q ListRecipesQuery
		if err := ParseQuery(c, &q); err != nil {
			return err
		}
		return shared.ResponseOK(c, nil)
	})

	req := httptest.NewRequest("GET", "/?difficulty=impossible", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != 400 {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestParseParamsValidatesUUID(t *testing.T) {
	app := fiber.New()
	app.Get("/recipes/:id", shared.MakeHandler(func(c *fiber.Ctx) error {
		var params RecipeIDParam
		if err := ParseParams(c, &params); err != nil {
			return err
		}
		return shared.ResponseOK(c, params.ID)
	}))

	resp, err := app.Test(httptest.NewRequest("GET", "/recipes/not-a-uuid", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != 400 {
		t.Errorf("bad uuid status = %d, want 400", resp.StatusCode)
	}

	resp, err = app.Test(httptest.NewRequest("GET", "/recipes/2b1f9c6e-9a3d-4f2b-8f68-cf2f1d3b9a11", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Errorf("good uuid status = %d, want 200", resp.StatusCode)
	}
}

// Binding the same request twice must produce the same result; the adapters
// read buffered input and have no side effects beyond logging.
func TestParseBodyIsRepeatable(t *testing.T) {
	app := bindApp(func(c *fiber.Ctx) error {
		var first, second RegisterRequest
		if err := ParseBody(c, &first); err != nil {
			return err
		}
		if err := ParseBody(c, &second); err != nil {
			return err
		}
		if first != second {
			return shared.ErrInfrastructure(nil)
		}
		return shared.ResponseOK(c, nil)
	})

	body := `{"email":"user@example.com","username":"johndoe","password":"SecurePass123!"}`
	req := httptest.NewRequest("POST", "/", strings.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
}

type versionedRequest struct {
	ClientVersion string `reqHeader:"X-Client-Version" validate:"required,semver"`
}

func (r versionedRequest) Validate() error {
	return GetValidator().Struct(r)
}

func TestParseHeadersAppliesSchema(t *testing.T) {
	tests := []struct {
		name       string
		version    string
		wantStatus int
	}{
		{"valid semver", "1.4.2", 200},
		{"missing header", "", 400},
		{"not a version", "latest", 400},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got versionedRequest
			app := bindApp(func(c *fiber.Ctx) error {
				if err := ParseHeaders(c, &got); err != nil {
					return err
				}
				return shared.ResponseOK(c, nil)
			})

			req := httptest.NewRequest("GET", "/", nil)
			if tt.version != "" {
				req.Header.Set("X-Client-Version", tt.version)
			}

			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("app.Test: %v", err)
			}
			if resp.StatusCode != tt.wantStatus {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.wantStatus)
			}
			if tt.wantStatus == 200 && got.ClientVersion != tt.version {
				t.Errorf("decoded version = %q, want %q", got.ClientVersion, tt.version)
			}
		})
	}
}
