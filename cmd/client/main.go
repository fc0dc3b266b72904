// cmd/client exercises the client-side core against a running server: it
// signs in (registering on first use), loads the note collection, composes a
// note through the draft editor and prints the filtered view.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"notekeep/internal/client/api"
	"notekeep/internal/client/editor"
	"notekeep/internal/client/notes"
	"notekeep/internal/client/session"

	"github.com/google/uuid"
)

var (
	baseURL  = flag.String("url", env("API_BASE_URL", "http://localhost:8080"), "Server base URL")
	username = flag.String("user", env("USERNAME", "demo"), "Username for first-time registration")
	email    = flag.String("email", env("EMAIL", "demo@example.com"), "User e-mail")
	pass     = flag.String("pass", env("PASSWORD", "pw123456"), "User password")
	title    = flag.String("title", "Shopping list", "Title of the note to compose")
	content  = flag.String("content", "Milk, eggs, coffee", "Content of the note to compose")
	category = flag.String("category", notes.CategoryPersonal, "Category of the note to compose")
	image    = flag.String("image", "", "Path of an image to attach (optional)")
)

func env(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// consoleNavigator stands in for the view layer: navigation is printed, not
// rendered.
type consoleNavigator struct{}

func (consoleNavigator) ToLogin() { fmt.Println("→ login view") }
func (consoleNavigator) ToMain()  { fmt.Println("→ main view") }

// pathImagePicker returns a fresh local reference for the configured file.
// The reference stands in for the copy a real app would place in its own
// storage.
type pathImagePicker struct {
	path string
}

func (p pathImagePicker) Pick(context.Context) (string, error) {
	if _, err := os.Stat(p.path); err != nil {
		return "", err
	}
	return "local/" + uuid.NewString(), nil
}

func main() {
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "FATAL:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	client := api.New(*baseURL)
	guard := session.NewGuard(consoleNavigator{})

	sess, err := signIn(ctx, client)
	if err != nil {
		return err
	}
	guard.Begin(sess)

	active, ok := guard.Require()
	if !ok {
		return errors.New("no active session")
	}
	fmt.Printf("signed in as %s <%s>\n", active.User.Username, active.User.Email)

	store := notes.NewStore()
	existing, err := client.ListNotes(ctx, active)
	if err != nil {
		return sessionAware(guard, err)
	}
	store.Reset(existing)
	fmt.Printf("loaded %d note(s)\n", store.Len())

	saved, err := compose(ctx, active, client)
	if err != nil {
		return sessionAware(guard, err)
	}
	store.Add(saved)
	fmt.Printf("saved note %s\n", saved.ID)

	if _, err := store.ToggleFavorite(saved.ID); err != nil {
		return err
	}

	fmt.Printf("categories: %v\n", store.Categories())
	for _, n := range store.Filter(notes.CategoryAll, "") {
		marker := " "
		if n.Favorite {
			marker = "*"
		}
		fmt.Printf("%s [%s] %s (%s)\n", marker, n.DisplayCategory(), n.Title, n.CreatedDisplayDate)
	}
	return nil
}

// signIn tries registration first and falls back to login for a known
// account.
func signIn(ctx context.Context, client *api.Client) (session.Session, error) {
	sess, err := client.Register(ctx, *username, *email, *pass)
	if err == nil {
		fmt.Println("registered new user")
		return sess, nil
	}

	var authErr *api.AuthError
	if !errors.As(err, &authErr) {
		return session.Session{}, err
	}

	sess, err = client.Login(ctx, *email, *pass)
	if err != nil {
		return session.Session{}, err
	}
	fmt.Println("logged in existing user")
	return sess, nil
}

// compose builds a note in the draft editor and saves it.
func compose(ctx context.Context, sess *session.Session, client *api.Client) (notes.Note, error) {
	var opts []editor.Option
	if *image != "" {
		opts = append(opts, editor.WithImagePicker(pathImagePicker{path: *image}))
	}

	draft := editor.New(opts...)
	draft.SetTitle(*title)
	draft.SetContent(*content)
	if err := draft.SetCategory(*category); err != nil {
		return notes.Note{}, err
	}
	if *image != "" {
		if err := draft.AttachImage(ctx); err != nil {
			return notes.Note{}, err
		}
	}

	return draft.Save(ctx, api.NotesSaver{Client: client, Session: sess})
}

// sessionAware expires the guard on a rejected credential so the next action
// lands on the login view.
func sessionAware(guard *session.Guard, err error) error {
	if errors.Is(err, session.ErrExpired) {
		guard.Expire()
	}
	return err
}
