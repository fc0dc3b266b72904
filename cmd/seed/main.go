// cmd/seed fills an account with generated notes for local development and
// load experiments. The user is registered on first run and reused after.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"notekeep/internal/client/api"
	"notekeep/internal/client/notes"
	"notekeep/internal/client/session"

	"github.com/brianvoe/gofakeit/v6"
)

var (
	baseURL  = flag.String("url", env("API_BASE_URL", "http://localhost:8080"), "Server base URL")
	username = flag.String("user", env("USERNAME", "demo"), "Username for first-time registration")
	email    = flag.String("email", env("EMAIL", "demo@example.com"), "User e-mail")
	pass     = flag.String("pass", env("PASSWORD", "pw123456"), "User password")
	nNotes   = flag.Int("n", envInt("COUNT", 200), "How many notes to create")
)

func env(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		var i int
		if _, err := fmt.Sscan(v, &i); err == nil && i > 0 {
			return i
		}
	}
	return def
}

func main() {
	flag.Parse()
	gofakeit.Seed(time.Now().UnixNano())

	fmt.Printf("Seeding %s with %d notes on %s\n", *email, *nNotes, *baseURL)

	ctx := context.Background()
	client := api.New(*baseURL)

	sess, err := ensureUser(ctx, client)
	if err != nil {
		fmt.Fprintln(os.Stderr, "FATAL:", err)
		os.Exit(1)
	}

	if err := createNotes(ctx, client, &sess, *nNotes); err != nil {
		fmt.Fprintln(os.Stderr, "FATAL:", err)
		os.Exit(1)
	}

	fmt.Println("done")
}

// ensureUser registers the account, falling back to login when it already
// exists.
func ensureUser(ctx context.Context, client *api.Client) (session.Session, error) {
	sess, err := client.Register(ctx, *username, *email, *pass)
	if err == nil {
		fmt.Println("• registered new user")
		return sess, nil
	}

	var authErr *api.AuthError
	if !errors.As(err, &authErr) {
		return session.Session{}, err
	}

	sess, err = client.Login(ctx, *email, *pass)
	if err != nil {
		return session.Session{}, fmt.Errorf("login failed: %w", err)
	}
	fmt.Println("• logged in existing user")
	return sess, nil
}

func createNotes(ctx context.Context, client *api.Client, sess *session.Session, total int) error {
	categories := notes.FixedCategories()

	for i := 1; i <= total; i++ {
		n := notes.Note{
			Title:              gofakeit.Sentence(3),
			Content:            gofakeit.Paragraph(1, 3, 40, " "),
			Category:           categories[rand.Intn(len(categories))],
			CreatedDisplayDate: time.Now().Format("1/2/2006"),
			Favorite:           gofakeit.Bool(),
			Style: notes.Style{
				BackgroundColor: gofakeit.HexColor(),
			},
		}

		if _, err := client.CreateNote(ctx, sess, n); err != nil {
			return fmt.Errorf("create note %d: %w", i, err)
		}

		if i%50 == 0 || i == total {
			fmt.Printf("  … %d/%d\n", i, total)
		}
	}
	return nil
}
