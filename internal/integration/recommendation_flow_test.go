package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"collablearn/internal/config"
	"collablearn/internal/database"
	"collablearn/internal/database/migration"
	dbpostgres "collablearn/internal/database/postgres"
	"collablearn/internal/delivery/http/middleware"
	"collablearn/internal/delivery/http/routes"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type semanticResponse struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type recommendationsData struct {
	Items []struct {
		ListingID     string  `json:"listing_id"`
		Name          string  `json:"name"`
		Category      string  `json:"category"`
		Score         float64 `json:"score"`
		PrimaryReason string  `json:"primary_reason"`
	} `json:"items"`
	Metadata struct {
		TotalAnalyzed int `json:"total_analyzed"`
		Qualifying    int `json:"qualifying"`
	} `json:"metadata"`
}

func TestIntegration_Login_Recommendations(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	db := connectTestDB(t, ctx)
	defer func() { _ = db.Close() }()

	runMigrations(t, ctx, db)

	seed := seedDummyData(t, ctx, db)
	defer cleanupSeed(t, ctx, db, seed)

	app := newTestFiberApp(t, seed.cfg, db)

	tok := loginAndGetJWT(t, app, seed)
	if tok == "" {
		t.Fatalf("login: empty access_token")
	}

	data := callRecommendations(t, app, tok)
	if len(data.Items) == 0 {
		t.Fatalf("recommendations: expected non-empty items")
	}
	if data.Metadata.TotalAnalyzed < 2 {
		t.Fatalf("recommendations: expected at least 2 analyzed, got %d", data.Metadata.TotalAnalyzed)
	}

	seen := map[string]struct{}{}
	for i, it := range data.Items {
		if _, ok := seen[it.ListingID]; ok {
			t.Fatalf("recommendations: duplicate listing_id=%s", it.ListingID)
		}
		seen[it.ListingID] = struct{}{}
		// no trending bookings seeded, so order is strictly by score
		if i > 0 && data.Items[i].Score > data.Items[i-1].Score {
			t.Fatalf("recommendations: score order broken at idx=%d (%f > %f)", i, data.Items[i].Score, data.Items[i-1].Score)
		}
	}

	found := false
	for _, it := range data.Items {
		if it.ListingID == seed.goalListingID.String() {
			found = true
			if it.PrimaryReason != "direct_match" {
				t.Fatalf("recommendations: goal listing expected direct_match, got %s", it.PrimaryReason)
			}
		}
		if it.ListingID == seed.ownListingID.String() {
			t.Fatalf("recommendations: the user's own listing surfaced")
		}
	}
	if !found {
		t.Fatalf("recommendations: seeded goal listing missing from response")
	}
}

func connectTestDB(t *testing.T, ctx context.Context) database.DB {
	t.Helper()

	host := stringsOrDefault(os.Getenv("COLLABLEARN_TEST_DB_HOST"), os.Getenv("DB_HOST"))
	port := stringsOrDefault(os.Getenv("COLLABLEARN_TEST_DB_PORT"), os.Getenv("DB_PORT"))
	name := stringsOrDefault(os.Getenv("COLLABLEARN_TEST_DB_NAME"), os.Getenv("DB_NAME"))
	user := stringsOrDefault(os.Getenv("COLLABLEARN_TEST_DB_USER"), os.Getenv("DB_USER"))
	pass := stringsOrDefault(os.Getenv("COLLABLEARN_TEST_DB_PASSWORD"), os.Getenv("DB_PASSWORD"))
	ssl := stringsOrDefault(os.Getenv("COLLABLEARN_TEST_DB_SSL_MODE"), os.Getenv("DB_SSL_MODE"))

	if host == "" || port == "" || name == "" || user == "" {
		t.Skip("missing test DB env vars: set COLLABLEARN_TEST_DB_HOST/PORT/NAME/USER/PASSWORD (or DB_HOST/DB_PORT/DB_NAME/DB_USER/DB_PASSWORD)")
	}
	if ssl == "" {
		ssl = "disable"
	}

	db, err := dbpostgres.Connect(ctx, config.DatabaseConfig{
		DBHost:     host,
		DBPort:     port,
		DBName:     name,
		DBUser:     user,
		DBPassword: pass,
		DBSSLMode:  ssl,
	})
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	return db
}

func runMigrations(t *testing.T, ctx context.Context, db database.DB) {
	t.Helper()

	r := migration.Runner{Dir: resolveMigrationsDir(t)}
	if err := r.Run(ctx, db.SQLDB()); err != nil {
		t.Fatalf("run migrations: %v", err)
	}
}

func resolveMigrationsDir(t *testing.T) string {
	t.Helper()

	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatalf("resolve migrations dir: runtime.Caller failed")
	}

	root := filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
	migDir := filepath.Join(root, "migrations")

	if st, err := os.Stat(migDir); err != nil || !st.IsDir() {
		t.Fatalf("resolve migrations dir: not found: %s", migDir)
	}
	return migDir
}

type seededIDs struct {
	cfg           config.Config
	learnerID     uuid.UUID
	instructorID  uuid.UUID
	goalListingID uuid.UUID
	ownListingID  uuid.UUID
	email         string
	password      string
}

func seedDummyData(t *testing.T, ctx context.Context, db database.DB) seededIDs {
	t.Helper()

	out := seededIDs{
		cfg: config.Config{
			App: config.AppConfig{AppName: "collablearn", Environment: "test", HTTPPort: "0"},
			JWT: config.JWTConfig{
				AccessSecret:     "it-test-access-secret",
				RefreshSecret:    "it-test-refresh-secret",
				AccessExpiresIn:  15 * time.Minute,
				RefreshExpiresIn: 24 * time.Hour,
			},
			Engine: config.EngineConfig{ScoreWorkers: 4, DefaultLimit: 20, MaxLimit: 50, CacheTTL: time.Minute},
		},
		email:    "it-learner@test.local",
		password: "it-password",
	}

	out.learnerID = ensureUser(t, ctx, db, out.email, out.password, 0)
	out.instructorID = ensureUser(t, ctx, db, "it-instructor@test.local", "x", 4.8)

	out.goalListingID = ensureListing(t, ctx, db, out.instructorID, "it-goal", "IT Go Workshop", "Programming", 0)
	_ = ensureListing(t, ctx, db, out.instructorID, "it-goal-2", "IT Spanish Conversation", "Languages", 20)
	_ = ensureListing(t, ctx, db, out.instructorID, "it-noise", "IT Macrame Circle", "Crafts", 400)
	out.ownListingID = ensureListing(t, ctx, db, out.learnerID, "it-own", "IT My Own Workshop", "Programming", 0)

	for _, goal := range []string{"IT Go Workshop", "IT Spanish Conversation"} {
		_, err := db.Exec(ctx,
			`INSERT INTO learning_goals (id, user_id, skill_name) VALUES (uuid_generate_v4(), $1, $2)
			 ON CONFLICT (user_id, skill_name) DO NOTHING`,
			out.learnerID, goal,
		)
		if err != nil {
			t.Fatalf("seed learning goal %q: %v", goal, err)
		}
	}

	return out
}

func cleanupSeed(t *testing.T, ctx context.Context, db database.DB, seed seededIDs) {
	t.Helper()

	_, _ = db.Exec(ctx, `DELETE FROM learning_goals WHERE user_id = $1`, seed.learnerID)
	_, _ = db.Exec(ctx, `DELETE FROM listings WHERE user_id = $1 OR user_id = $2`, seed.learnerID, seed.instructorID)
	_, _ = db.Exec(ctx, `DELETE FROM users WHERE id = $1 OR id = $2`, seed.learnerID, seed.instructorID)
}

func newTestFiberApp(t *testing.T, cfg config.Config, db database.DB) *fiber.App {
	t.Helper()

	app := fiber.New(fiber.Config{})
	app.Use(middleware.NewErrorMiddleware().Middleware())

	routes.NewRegistry(cfg, db, nil, nil, nil).Register(app)
	return app
}

func loginAndGetJWT(t *testing.T, app *fiber.App, seed seededIDs) string {
	t.Helper()

	b, _ := json.Marshal(map[string]string{"email": seed.email, "password": seed.password})

	req := httptest.NewRequest("POST", "/api/v1/auth/login", bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("login request error: %v", err)
	}
	defer resp.Body.Close()

	var sr semanticResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		t.Fatalf("login decode error: %v", err)
	}
	if sr.Status != 200 {
		t.Fatalf("login: expected status=200, got %d (message=%s)", sr.Status, sr.Message)
	}

	var m map[string]json.RawMessage
	if err := json.Unmarshal(sr.Data, &m); err != nil {
		t.Fatalf("login: data unmarshal error: %v", err)
	}
	var token string
	if raw, ok := m["access_token"]; ok {
		_ = json.Unmarshal(raw, &token)
	}
	if token == "" {
		t.Fatalf("login: missing access_token")
	}
	return token
}

func callRecommendations(t *testing.T, app *fiber.App, jwt string) recommendationsData {
	t.Helper()

	req := httptest.NewRequest("GET", "/api/v1/recommendations?limit=10", nil)
	req.Header.Set("Authorization", "Bearer "+jwt)

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("recommendations request error: %v", err)
	}
	defer resp.Body.Close()

	var sr semanticResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		t.Fatalf("recommendations decode error: %v", err)
	}
	if sr.Status != 200 {
		t.Fatalf("recommendations: expected status=200, got %d (message=%s)", sr.Status, sr.Message)
	}

	var data recommendationsData
	if err := json.Unmarshal(sr.Data, &data); err != nil {
		t.Fatalf("recommendations: data unmarshal error: %v", err)
	}
	return data
}

func ensureUser(t *testing.T, ctx context.Context, db database.DB, email, password string, rating float64) uuid.UUID {
	t.Helper()

	pwHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("seed user: bcrypt error: %v", err)
	}

	_, err = db.Exec(ctx,
		`INSERT INTO users (id, email, password_hash, display_name, rating) VALUES (uuid_generate_v4(), $1, $2, $3, $4)
		 ON CONFLICT (email) DO UPDATE SET password_hash = EXCLUDED.password_hash, rating = EXCLUDED.rating`,
		email, string(pwHash), email, rating,
	)
	if err != nil {
		t.Fatalf("seed user insert: %v", err)
	}

	row := db.QueryRow(ctx, `SELECT id FROM users WHERE email = $1 LIMIT 1`, email)
	var got uuid.UUID
	if err := row.Scan(&got); err != nil {
		t.Fatalf("seed user select: %v", err)
	}
	return got
}

func ensureListing(t *testing.T, ctx context.Context, db database.DB, ownerID uuid.UUID, externalID, name, category string, price float64) uuid.UUID {
	t.Helper()

	_, err := db.Exec(ctx,
		`INSERT INTO listings (id, user_id, name, category, price, source, external_id)
		 VALUES (uuid_generate_v4(), $1, $2, $3, $4, 'it-test', $5)
		 ON CONFLICT (source, external_id) DO UPDATE SET name = EXCLUDED.name, price = EXCLUDED.price`,
		ownerID, name, category, price, externalID,
	)
	if err != nil {
		t.Fatalf("seed listing %s: %v", externalID, err)
	}

	row := db.QueryRow(ctx, `SELECT id FROM listings WHERE source = 'it-test' AND external_id = $1 LIMIT 1`, externalID)
	var got uuid.UUID
	if err := row.Scan(&got); err != nil {
		t.Fatalf("seed listing select %s: %v", externalID, err)
	}
	return got
}

func stringsOrDefault(v, def string) string {
	if v != "" {
		return v
	}
	return def
}
