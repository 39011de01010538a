package routers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"techtrek/config"
	"techtrek/database/databasetest"
	"techtrek/events"
	"techtrek/events/eventstest"
	"techtrek/models"
	"techtrek/services"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const password = "Secret#123"

var pngBytes = append([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), make([]byte, 64)...)

type testEnv struct {
	app       *fiber.App
	db        *gorm.DB
	cfg       *config.Config
	publisher *eventstest.Recorder
}

func newTestEnv(t *testing.T, tweak ...func(*config.Config)) *testEnv {
	t.Helper()

	cfg := &config.Config{
		SaltRound:          bcrypt.MinCost,
		UploadDir:          t.TempDir(),
		AvatarSniffContent: true,
		SessionExpiration:  time.Hour,
	}
	for _, f := range tweak {
		f(cfg)
	}

	db := databasetest.New(t)
	require.NoError(t, services.NewCatalogService(db).SeedSampleData(context.Background()))

	rec := &eventstest.Recorder{}
	app := NewApp(Deps{Config: cfg, DB: db, Publisher: rec})
	return &testEnv{app: app, db: db, cfg: cfg, publisher: rec}
}

// client is a browser with a single session cookie.
type client struct {
	t       *testing.T
	env     *testEnv
	session string
}

func (e *testEnv) client(t *testing.T) *client {
	return &client{t: t, env: e}
}

func (cl *client) do(req *http.Request) *http.Response {
	cl.t.Helper()
	if cl.session != "" {
		req.AddCookie(&http.Cookie{Name: "session_id", Value: cl.session})
	}
	resp, err := cl.env.app.Test(req, -1)
	require.NoError(cl.t, err)
	for _, ck := range resp.Cookies() {
		if ck.Name == "session_id" && ck.Value != "" {
			cl.session = ck.Value
		}
	}
	return resp
}

func (cl *client) get(path string) *http.Response {
	return cl.do(httptest.NewRequest(http.MethodGet, path, nil))
}

func (cl *client) post(path string, form url.Values) *http.Response {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return cl.do(req)
}

func (cl *client) postMultipart(path string, fields map[string]string, filename string, content []byte) *http.Response {
	cl.t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(cl.t, w.WriteField(k, v))
	}
	if filename != "" {
		part, err := w.CreateFormFile("profile_picture", filename)
		require.NoError(cl.t, err)
		_, err = part.Write(content)
		require.NoError(cl.t, err)
	}
	require.NoError(cl.t, w.Close())

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return cl.do(req)
}

// view GETs path and returns the decoded "data" of the view-model.
func (cl *client) view(path string) (int, map[string]any) {
	cl.t.Helper()
	resp := cl.get(path)
	return resp.StatusCode, decodeData(cl.t, resp)
}

func decodeData(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out struct {
		Data map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	return out.Data
}

func flashes(data map[string]any) []map[string]any {
	var out []map[string]any
	list, _ := data["flashes"].([]any)
	for _, f := range list {
		out = append(out, f.(map[string]any))
	}
	return out
}

func assertRedirect(t *testing.T, resp *http.Response, location string) {
	t.Helper()
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, location, resp.Header.Get("Location"))
}

func assertFlash(t *testing.T, cl *client, category, message string) {
	t.Helper()
	_, data := cl.view("/about")
	got := flashes(data)
	require.Len(t, got, 1, "flashes: %v", got)
	assert.Equal(t, category, got[0]["category"])
	assert.Equal(t, message, got[0]["message"])
}

func registerForm(email, pw string) url.Values {
	return url.Values{
		"name":             {"Ada Lovelace"},
		"email":            {email},
		"mobile":           {"5550100"},
		"password":         {pw},
		"confirm_password": {pw},
	}
}

func (cl *client) signUpAndIn(email string) {
	cl.t.Helper()
	assertRedirect(cl.t, cl.post("/register", registerForm(email, password)), "/login")
	assertRedirect(cl.t, cl.post("/login", url.Values{"email": {email}, "password": {password}}), "/profile")
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func countRows(t *testing.T, db *gorm.DB, model any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(model).Count(&n).Error)
	return n
}

func TestHomeListsCatalog(t *testing.T) {
	env := newTestEnv(t)

	status, data := env.client(t).view("/")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "index", data["view"])
	assert.Len(t, data["featured_courses"], 3)
	assert.Len(t, data["testimonials"], 3)
}

func TestInformationalAndCoursePages(t *testing.T) {
	env := newTestEnv(t)
	cl := env.client(t)

	for _, page := range []string{"about", "blog", "careers", "terms", "accessibility", "privacy", "pricing",
		"python", "react", "webdev", "cpp", "js", "sql", "ai", "datascience"} {
		status, data := cl.view("/" + page)
		assert.Equal(t, fiber.StatusOK, status, page)
		assert.Equal(t, page, data["view"])
	}

	resp := cl.post("/careers", url.Values{})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestUnknownRouteIsNotFound(t *testing.T) {
	env := newTestEnv(t)
	resp := env.client(t).get("/teach")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestRegisterLoginProfileLogout(t *testing.T) {
	env := newTestEnv(t)
	cl := env.client(t)

	assertRedirect(t, cl.post("/register", registerForm("ada@example.com", password)), "/login")
	assertFlash(t, cl, "success", "Registration successful! Please login.")
	assert.Equal(t, []string{events.UserRegistered}, env.publisher.Types())

	assertRedirect(t, cl.post("/login", url.Values{"email": {"ada@example.com"}, "password": {password}}), "/profile")

	status, data := cl.view("/profile")
	require.Equal(t, fiber.StatusOK, status)
	user := data["user"].(map[string]any)
	assert.Equal(t, "ada@example.com", user["email"])
	assert.NotContains(t, user, "password")
	require.Len(t, flashes(data), 1)
	assert.Equal(t, "Login successful!", flashes(data)[0]["message"])

	assertRedirect(t, cl.get("/logout"), "/login")
	assertFlash(t, cl, "info", "Logged out successfully!")

	assertRedirect(t, cl.get("/profile"), "/login")
	assertFlash(t, cl, "info", "Please log in to access this page.")

	// Logging out twice is harmless.
	assertRedirect(t, cl.get("/logout"), "/login")
}

func TestRegisterRejectsWeakPassword(t *testing.T) {
	env := newTestEnv(t)
	cl := env.client(t)

	for _, pw := range []string{"Sh0rt!", "nouppercase1!", "NOLOWERCASE1!", "NoDigits!!", "NoSymbols123"} {
		assertRedirect(t, cl.post("/register", registerForm("ada@example.com", pw)), "/register")
		_, data := cl.view("/register")
		got := flashes(data)
		require.Len(t, got, 1)
		assert.Equal(t, "warning", got[0]["category"])
	}
	assert.Zero(t, countRows(t, env.db, &models.User{}))
}

func TestRegisterValidationMessages(t *testing.T) {
	env := newTestEnv(t)
	cl := env.client(t)

	form := registerForm("ada@example.com", password)
	form.Set("name", "")
	assertRedirect(t, cl.post("/register", form), "/register")
	assertFlash(t, cl, "warning", "All fields are required!")

	form = registerForm("ada@example.com", password)
	form.Set("confirm_password", "Other#123")
	assertRedirect(t, cl.post("/register", form), "/register")
	assertFlash(t, cl, "danger", "Passwords do not match!")
}

func TestRegisterDuplicateEmailRedirectsToLogin(t *testing.T) {
	env := newTestEnv(t)
	cl := env.client(t)

	assertRedirect(t, cl.post("/register", registerForm("ada@example.com", password)), "/login")
	cl.get("/about") // drain flash

	assertRedirect(t, cl.post("/register", registerForm("ada@example.com", password)), "/login")
	assertFlash(t, cl, "warning", "Email already registered. Please login!")
	assert.Equal(t, int64(1), countRows(t, env.db, &models.User{}))
}

func TestRegisterPersistenceFailureShowsGenericError(t *testing.T) {
	env := newTestEnv(t)
	cl := env.client(t)
	require.NoError(t, env.db.Migrator().DropTable(&models.User{}))

	assertRedirect(t, cl.post("/register", registerForm("ada@example.com", password)), "/register")
	assertFlash(t, cl, "danger", "An error occurred. Please try again.")
}

func TestLoginFailures(t *testing.T) {
	env := newTestEnv(t)
	cl := env.client(t)
	assertRedirect(t, cl.post("/register", registerForm("ada@example.com", password)), "/login")
	cl.get("/about")

	assertRedirect(t, cl.post("/login", url.Values{"email": {"ada@example.com"}, "password": {"Wrong#123"}}), "/login")
	assertFlash(t, cl, "danger", "Invalid email or password. Try again!")

	assertRedirect(t, cl.post("/login", url.Values{"email": {"who@example.com"}, "password": {password}}), "/login")
	assertFlash(t, cl, "danger", "Invalid email or password. Try again!")

	assertRedirect(t, cl.get("/profile"), "/login")
}

func TestLoginRateLimit(t *testing.T) {
	env := newTestEnv(t, func(c *config.Config) { c.RateLimitMax = 2 })
	cl := env.client(t)

	form := url.Values{"email": {"a@example.com"}, "password": {"x"}}
	assert.Equal(t, fiber.StatusFound, cl.post("/login", form).StatusCode)
	assert.Equal(t, fiber.StatusFound, cl.post("/login", form).StatusCode)
	assert.Equal(t, fiber.StatusTooManyRequests, cl.post("/login", form).StatusCode)
}

func TestEditProfileWithAvatar(t *testing.T) {
	env := newTestEnv(t)
	cl := env.client(t)
	cl.signUpAndIn("ada@example.com")

	status, data := cl.view("/edit_profile")
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "edit_profile", data["view"])

	resp := cl.postMultipart("/edit_profile",
		map[string]string{"name": "Ada King", "email": "ada@king.example", "mobile": "5550199"},
		"../avatar one.png", pngBytes)
	assertRedirect(t, resp, "/profile")

	_, data = cl.view("/profile")
	user := data["user"].(map[string]any)
	assert.Equal(t, "Ada King", user["name"])
	assert.Equal(t, "ada@king.example", user["email"])
	assert.Equal(t, "avatar_one.png", user["profile_picture"])
	assert.FileExists(t, filepath.Join(env.cfg.UploadDir, "avatar_one.png"))

	// A disallowed upload keeps the stored avatar.
	resp = cl.postMultipart("/profile",
		map[string]string{"name": "Ada King", "email": "ada@king.example", "mobile": "5550100"},
		"virus.exe", []byte("MZ"))
	assertRedirect(t, resp, "/profile")

	_, data = cl.view("/profile")
	user = data["user"].(map[string]any)
	assert.Equal(t, "avatar_one.png", user["profile_picture"])
	assert.Equal(t, "5550100", user["mobile"])
}

func TestProfileUpdateRequiresFields(t *testing.T) {
	env := newTestEnv(t)
	cl := env.client(t)
	cl.signUpAndIn("ada@example.com")
	cl.get("/about")

	assertRedirect(t, cl.post("/profile", url.Values{"name": {"Ada"}, "email": {""}, "mobile": {"1"}}), "/profile")
	assertFlash(t, cl, "warning", "All fields are required!")

	assertRedirect(t, cl.post("/edit_profile", url.Values{"name": {""}, "email": {"a@b.c"}, "mobile": {"1"}}), "/edit_profile")
	assertFlash(t, cl, "warning", "All fields are required!")
}

func TestProfileRoutesRequireLogin(t *testing.T) {
	env := newTestEnv(t)
	cl := env.client(t)

	assertRedirect(t, cl.get("/edit_profile"), "/login")
	assertRedirect(t, cl.post("/profile", url.Values{"name": {"x"}, "email": {"x"}, "mobile": {"x"}}), "/login")
}

func TestCartRequiresLogin(t *testing.T) {
	env := newTestEnv(t)
	assertRedirect(t, env.client(t).get("/cart"), "/login")
}

func TestAnonymousAddThenViewCart(t *testing.T) {
	env := newTestEnv(t)
	cl := env.client(t)

	plan := url.Values{"plan_type": {"pro"}, "plan_price": {"19.99"}}
	assertRedirect(t, cl.post("/add-to-cart", plan), "/cart")
	assertFlash(t, cl, "success", "Plan added to cart successfully")

	assertRedirect(t, cl.post("/add-to-cart", plan), "/cart")
	assertFlash(t, cl, "info", "This plan is already in your cart")

	assertRedirect(t, cl.post("/add-to-cart", url.Values{"plan_type": {"basic"}, "plan_price": {"9.99"}}), "/cart")
	assert.Equal(t, int64(2), countRows(t, env.db, &models.CartItem{}))

	// The cart token survives login.
	cl.signUpAndIn("ada@example.com")
	status, data := cl.view("/cart")
	require.Equal(t, fiber.StatusOK, status)
	assert.Len(t, data["cart_items"], 2)
	assert.InDelta(t, 29.98, data["subtotal"], 1e-9)
	assert.InDelta(t, 2.998, data["tax"], 1e-9)
	assert.InDelta(t, 32.978, data["total"], 1e-9)

	// And logout.
	assertRedirect(t, cl.get("/logout"), "/login")
	assertRedirect(t, cl.post("/login", url.Values{"email": {"ada@example.com"}, "password": {password}}), "/profile")
	_, data = cl.view("/cart")
	assert.Len(t, data["cart_items"], 2)
}

func TestEmptyCartTotals(t *testing.T) {
	env := newTestEnv(t)
	cl := env.client(t)
	cl.signUpAndIn("ada@example.com")

	_, data := cl.view("/cart")
	assert.Len(t, data["cart_items"], 0)
	assert.Equal(t, 0.0, data["subtotal"])
	assert.Equal(t, 0.0, data["tax"])
	assert.Equal(t, 0.0, data["total"])
}

func TestAddToCartRejectsBadPrice(t *testing.T) {
	env := newTestEnv(t)
	cl := env.client(t)

	assertRedirect(t, cl.post("/add-to-cart", url.Values{"plan_type": {"pro"}, "plan_price": {"abc"}}), "/cart")
	assertRedirect(t, cl.post("/add-to-cart", url.Values{"plan_type": {"pro"}}), "/cart")
	assertRedirect(t, cl.post("/add-to-cart", url.Values{"plan_type": {"pro"}, "plan_price": {"-5"}}), "/cart")
	for _, price := range []string{"Inf", "+Inf", "-Inf", "NaN", "1e309"} {
		assertRedirect(t, cl.post("/add-to-cart", url.Values{"plan_type": {"evil"}, "plan_price": {price}}), "/cart")
		_, data := cl.view("/about")
		got := flashes(data)
		require.Len(t, got, 1, price)
		assert.Equal(t, "danger", got[0]["category"], price)
	}
	assert.Zero(t, countRows(t, env.db, &models.CartItem{}))

	cl.signUpAndIn("ada@example.com")
	status, data := cl.view("/cart")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Len(t, data["cart_items"], 0)
}

func TestRemoveFromCartOwnershipIsSilent(t *testing.T) {
	env := newTestEnv(t)
	owner := env.client(t)
	intruder := env.client(t)

	assertRedirect(t, owner.post("/add-to-cart", url.Values{"plan_type": {"pro"}, "plan_price": {"19.99"}}), "/cart")
	owner.get("/about")
	intruder.post("/add-to-cart", url.Values{"plan_type": {"basic"}, "plan_price": {"9.99"}})
	intruder.get("/about")

	var item models.CartItem
	require.NoError(t, env.db.Where("plan_type = ?", "pro").First(&item).Error)
	form := url.Values{"item_id": {itoa(item.ID)}}

	foreign := intruder.post("/remove-from-cart", form)
	assertRedirect(t, foreign, "/cart")
	_, intruderView := intruder.view("/about")
	assert.NoError(t, env.db.First(&models.CartItem{}, item.ID).Error, "foreign removal must not delete")

	own := owner.post("/remove-from-cart", form)
	assertRedirect(t, own, "/cart")
	_, ownerView := owner.view("/about")
	assert.Error(t, env.db.First(&models.CartItem{}, item.ID).Error)

	assert.Equal(t, flashes(ownerView), flashes(intruderView))
}

func TestRemoveUnknownCartItem(t *testing.T) {
	env := newTestEnv(t)
	cl := env.client(t)

	assert.Equal(t, fiber.StatusNotFound, cl.post("/remove-from-cart", url.Values{"item_id": {"4242"}}).StatusCode)
	assert.Equal(t, fiber.StatusNotFound, cl.post("/remove-from-cart", url.Values{"item_id": {"abc"}}).StatusCode)
}

func TestCheckoutKeepsCart(t *testing.T) {
	env := newTestEnv(t)
	cl := env.client(t)

	cl.post("/add-to-cart", url.Values{"plan_type": {"pro"}, "plan_price": {"19.99"}})
	cl.get("/about")

	assertRedirect(t, cl.post("/checkout", url.Values{}), "/cart")
	assertFlash(t, cl, "info", "Checkout functionality will be implemented soon")
	assert.Equal(t, int64(1), countRows(t, env.db, &models.CartItem{}))
}

func contactForm(message string) url.Values {
	return url.Values{
		"name":    {"Grace Hopper"},
		"email":   {"grace@example.com"},
		"subject": {"Compilers"},
		"message": {message},
	}
}

func TestContactSubmission(t *testing.T) {
	env := newTestEnv(t)
	cl := env.client(t)

	status, data := cl.view("/contact")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "contact", data["view"])

	resp := cl.post("/contact", contactForm("123456789"))
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
	data = decodeData(t, resp)
	errs := data["errors"].(map[string]any)
	assert.Contains(t, errs, "message")
	form := data["form"].(map[string]any)
	assert.Equal(t, "123456789", form["message"])
	assert.Zero(t, countRows(t, env.db, &models.ContactMessage{}))

	assertRedirect(t, cl.post("/contact", contactForm("1234567890")), "/contact")
	assertFlash(t, cl, "success", "Thank you! Your message has been sent successfully.")

	var stored models.ContactMessage
	require.NoError(t, env.db.First(&stored).Error)
	assert.Equal(t, "1234567890", stored.Message)
	assert.False(t, stored.CreatedAt.IsZero())
	assert.Contains(t, env.publisher.Types(), events.ContactSubmitted)
}

func TestContactPersistenceFailure(t *testing.T) {
	env := newTestEnv(t)
	cl := env.client(t)
	require.NoError(t, env.db.Migrator().DropTable(&models.ContactMessage{}))

	resp := cl.post("/contact", contactForm("a perfectly fine message"))
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	data := decodeData(t, resp)
	got := flashes(data)
	require.Len(t, got, 1)
	assert.Equal(t, "danger", got[0]["category"])
}
