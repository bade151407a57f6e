package catalog

import (
	"context"
	"crypto/rand"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"

	"collablearn/internal/database"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type rawListingInput struct {
	ExternalID  string
	Name        string
	Category    string
	SubCategory string
	Tags        []string
	Price       float64
	Level       string
	URL         string
}

// ensureImportUser guarantees a dedicated instructor account per import
// source, so imported listings satisfy the user_id foreign key.
func ensureImportUser(ctx context.Context, db database.DB, source string) (uuid.UUID, error) {
	if db == nil {
		return uuid.Nil, fmt.Errorf("nil db")
	}
	source = strings.TrimSpace(strings.ToLower(source))
	if source == "" {
		return uuid.Nil, fmt.Errorf("empty source name")
	}
	email := source + "@imports.collablearn.local"

	hash, err := bcrypt.GenerateFromPassword(randomPassword(), bcrypt.DefaultCost)
	if err != nil {
		return uuid.Nil, err
	}

	_, _ = db.Exec(ctx,
		`INSERT INTO users (id, email, password_hash, display_name) VALUES (uuid_generate_v4(), $1, $2, $3) ON CONFLICT (email) DO NOTHING`,
		email, string(hash), source+" catalog",
	)

	row := db.QueryRow(ctx, `SELECT id FROM users WHERE email = $1 LIMIT 1`, email)
	var id uuid.UUID
	if err := row.Scan(&id); err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

func randomPassword() []byte {
	b := make([]byte, 24)
	_, _ = rand.Read(b)
	return []byte(hex.EncodeToString(b))
}

func upsertListing(ctx context.Context, db database.DB, source string, instructorID uuid.UUID, in rawListingInput) error {
	if db == nil {
		return fmt.Errorf("nil db")
	}
	if instructorID == uuid.Nil {
		return fmt.Errorf("nil instructor_id")
	}

	externalID := strings.TrimSpace(in.ExternalID)
	if externalID == "" {
		externalID = stableExternalIDFromURL(in.URL)
	}
	if externalID == "" {
		return fmt.Errorf("listing without external id or url")
	}

	name := strings.TrimSpace(in.Name)
	if name == "" {
		return fmt.Errorf("listing without name external_id=%s", externalID)
	}

	category := strings.TrimSpace(in.Category)
	if category == "" {
		category = "General"
	}

	_, err := db.Exec(ctx,
		`INSERT INTO listings (
			id, user_id, name, category, sub_category, tags, price, level,
			is_published, is_offering, source, external_id, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,TRUE,TRUE,$9,$10,$11)
		ON CONFLICT (source, external_id) DO UPDATE SET
			name = EXCLUDED.name,
			category = EXCLUDED.category,
			sub_category = EXCLUDED.sub_category,
			tags = EXCLUDED.tags,
			price = EXCLUDED.price,
			level = EXCLUDED.level,
			is_published = TRUE,
			updated_at = EXCLUDED.updated_at`,
		uuid.New(),
		instructorID,
		name,
		category,
		strings.TrimSpace(in.SubCategory),
		normalizeTags(in.Tags),
		in.Price,
		normalizeLevel(in.Level),
		strings.TrimSpace(strings.ToLower(source)),
		externalID,
		time.Now().UTC(),
	)
	return err
}

// unpublishSource hides a source's previous listings before a full refresh;
// the upsert republishes everything still present upstream.
func unpublishSource(ctx context.Context, db database.DB, source string) error {
	if db == nil {
		return fmt.Errorf("nil db")
	}
	source = strings.TrimSpace(strings.ToLower(source))
	if source == "" {
		return fmt.Errorf("empty source name")
	}
	_, err := db.Exec(ctx, `UPDATE listings SET is_published = FALSE WHERE source = $1`, source)
	return err
}

func stableExternalIDFromURL(u string) string {
	u = strings.TrimSpace(u)
	if u == "" {
		return ""
	}
	h := sha1.Sum([]byte(u))
	return "urlsha1-" + hex.EncodeToString(h[:])
}

func normalizeTags(tags []string) []string {
	seen := map[string]struct{}{}
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(strings.ToLower(t))
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

func normalizeLevel(level string) string {
	switch strings.TrimSpace(strings.ToLower(level)) {
	case "intermediate":
		return "intermediate"
	case "advanced":
		return "advanced"
	case "expert":
		return "expert"
	default:
		return "beginner"
	}
}

// parsePrice extracts the first decimal number from strings like
// "$25.00/hr", "Rp 150.000" or "Free". Anything unparseable is free.
func parsePrice(raw string) float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	var sb strings.Builder
	seenDigit := false
	for _, r := range raw {
		switch {
		case r >= '0' && r <= '9':
			seenDigit = true
			sb.WriteRune(r)
		case r == '.' && seenDigit:
			sb.WriteRune(r)
		default:
			if seenDigit {
				v, err := strconv.ParseFloat(sb.String(), 64)
				if err != nil {
					return 0
				}
				return v
			}
		}
	}
	if !seenDigit {
		return 0
	}
	v, err := strconv.ParseFloat(strings.TrimRight(sb.String(), "."), 64)
	if err != nil {
		return 0
	}
	return v
}

func pickNonEmpty(a, b string) string {
	a = strings.TrimSpace(a)
	if a != "" {
		return a
	}
	return strings.TrimSpace(b)
}
