package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type influencerSeed struct {
	Name        string
	Handle      string
	Platform    string
	Subscribers int64
	Price       float64
	Categories  []string
}

type packageSeed struct {
	Header string
	Cost   float64
	Text1  string
	Items  []packageItemSeed
}

type packageItemSeed struct {
	Media          string
	Link           string
	Format         string
	MonthlyTraffic string
	TurnaroundTime string
}

// Apply inserts basic seed data for manual testing. Reruns do not duplicate
// rows: every entity is keyed by a natural column and upserted or skipped.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	influencers := []influencerSeed{
		{Name: "Tech Tina", Handle: "@techtina", Platform: "youtube", Subscribers: 1200000, Price: 30000, Categories: []string{"tech", "gadgets"}},
		{Name: "Fit Felix", Handle: "@fitfelix", Platform: "instagram", Subscribers: 450000, Price: 5000, Categories: []string{"fitness"}},
		{Name: "Chef Carla", Handle: "@chefcarla", Platform: "tiktok", Subscribers: 80000, Price: 1200, Categories: []string{"food"}},
	}
	for _, in := range influencers {
		if err := upsertInfluencer(ctx, pool, in); err != nil {
			return fmt.Errorf("upsert influencer %s: %w", in.Name, err)
		}
	}

	packages := []packageSeed{
		{
			Header: "Tech launch bundle", Cost: 30000, Text1: "Homepage feature",
			Items: []packageItemSeed{
				{Media: "TechDaily", Link: "https://techdaily.example", Format: "Article", MonthlyTraffic: "1200000", TurnaroundTime: "5 days"},
				{Media: "GadgetWeek", Link: "https://gadgetweek.example", Format: "Video", MonthlyTraffic: "800000", TurnaroundTime: "7 days"},
			},
		},
		{
			Header: "Lifestyle starter", Cost: 5000, Text1: "Story mention",
			Items: []packageItemSeed{
				{Media: "StyleMag", Link: "https://stylemag.example", Format: "Story", MonthlyTraffic: "300000", TurnaroundTime: "3 days"},
			},
		},
	}
	for _, p := range packages {
		if err := ensurePackage(ctx, pool, p); err != nil {
			return fmt.Errorf("ensure package %s: %w", p.Header, err)
		}
	}

	if err := ensureUser(ctx, pool, "Demo Buyer", "demo@example.com"); err != nil {
		return fmt.Errorf("ensure user: %w", err)
	}

	if err := ensureCoupon(ctx, pool, "WELCOME10", 10, 1000); err != nil {
		return fmt.Errorf("ensure coupon: %w", err)
	}

	if err := ensureQuestions(ctx, pool); err != nil {
		return fmt.Errorf("ensure questions: %w", err)
	}
	return nil
}

func upsertInfluencer(ctx context.Context, pool *pgxpool.Pool, in influencerSeed) error {
	const q = `
INSERT INTO influencers (name, handle, platform, subscribers, price, categories)
SELECT $1, $2, $3, $4, $5, $6
WHERE NOT EXISTS (SELECT 1 FROM influencers WHERE handle = $2)
`
	_, err := pool.Exec(ctx, q, in.Name, in.Handle, in.Platform, in.Subscribers, in.Price, in.Categories)
	return err
}

func ensurePackage(ctx context.Context, pool *pgxpool.Pool, p packageSeed) error {
	var id string
	err := pool.QueryRow(ctx, `SELECT id::text FROM package_headers WHERE header = $1 AND cost = $2`, p.Header, p.Cost).Scan(&id)
	if err != nil {
		if insertErr := pool.QueryRow(ctx, `
INSERT INTO package_headers (header, cost, text1)
VALUES ($1, $2, $3)
RETURNING id::text`, p.Header, p.Cost, p.Text1).Scan(&id); insertErr != nil {
			return insertErr
		}
	}
	for _, it := range p.Items {
		_, err := pool.Exec(ctx, `
INSERT INTO package_items (header_id, media, link, format, monthly_traffic, turnaround_time)
SELECT $1, $2, $3, $4, $5, $6
WHERE NOT EXISTS (SELECT 1 FROM package_items WHERE header_id = $1 AND media = $2)`,
			id, it.Media, it.Link, it.Format, it.MonthlyTraffic, it.TurnaroundTime)
		if err != nil {
			return err
		}
	}
	return nil
}

func ensureUser(ctx context.Context, pool *pgxpool.Pool, name, email string) error {
	_, err := pool.Exec(ctx, `
INSERT INTO users (full_name, email, status)
SELECT $1, $2, 'active'
WHERE NOT EXISTS (SELECT 1 FROM users WHERE email = $2)`,
		name, email)
	return err
}

func ensureCoupon(ctx context.Context, pool *pgxpool.Pool, name string, discount, minOrder float64) error {
	expiry := time.Now().AddDate(1, 0, 0).Unix()
	_, err := pool.Exec(ctx, `
INSERT INTO coupon_codes (name, expiry_ts, discount_percentage, minimum_order_value, active)
SELECT $1, $2, $3, $4, true
WHERE NOT EXISTS (SELECT 1 FROM coupon_codes WHERE name = $1)`,
		name, expiry, discount, minOrder)
	return err
}

func ensureQuestions(ctx context.Context, pool *pgxpool.Pool) error {
	questions := []struct {
		Text     string
		Position int
		Options  []struct{ Text, Reference string }
	}{
		{
			Text: "What is your campaign budget?", Position: 1,
			Options: []struct{ Text, Reference string }{
				{"Under 5,000", "budget-small"},
				{"5,000 to 50,000", "budget-mid"},
				{"Over 50,000", "budget-large"},
			},
		},
		{
			Text: "Which audience matters most to you?", Position: 2,
			Options: []struct{ Text, Reference string }{
				{"Tech enthusiasts", "audience-tech"},
				{"Lifestyle and fashion", "audience-lifestyle"},
				{"Fitness and health", "audience-fitness"},
			},
		},
	}

	for _, q := range questions {
		var id string
		err := pool.QueryRow(ctx, `SELECT id::text FROM questions WHERE text = $1`, q.Text).Scan(&id)
		if err != nil {
			if insertErr := pool.QueryRow(ctx, `
INSERT INTO questions (text, position) VALUES ($1, $2) RETURNING id::text`, q.Text, q.Position).Scan(&id); insertErr != nil {
				return insertErr
			}
		}
		for _, opt := range q.Options {
			_, err := pool.Exec(ctx, `
INSERT INTO question_options (question_id, text, reference)
SELECT $1, $2, $3
WHERE NOT EXISTS (SELECT 1 FROM question_options WHERE question_id = $1 AND text = $2)`,
				id, opt.Text, opt.Reference)
			if err != nil {
				return err
			}
		}
	}
	return nil
}
