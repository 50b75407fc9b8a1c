package gcal

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

const (
	appDir          = "expoadmin"
	tokenFile       = "token.json"
	credentialsFile = "credentials.json"
)

// ConfigDir returns ~/.config/expoadmin, creating it when missing.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(home, ".config", appDir)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", err
	}
	return dir, nil
}

// Path returns the location of name inside the config directory.
func Path(name string) (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, name), nil
}

// Prompt is where the OAuth consent flow talks to the user. It runs before
// any TUI takes over the terminal.
type Prompt struct {
	In  io.Reader
	Out io.Writer
}

// DefaultPrompt uses the process terminal.
var DefaultPrompt = Prompt{In: os.Stdin, Out: os.Stderr}

// GetToken returns the stored token or runs the consent flow and stores the
// result.
func (p Prompt) GetToken(ctx context.Context, config *oauth2.Config) (*oauth2.Token, error) {
	tokPath, err := Path(tokenFile)
	if err != nil {
		return nil, err
	}

	tok, err := tokenFromFile(tokPath)
	if err == nil {
		return tok, nil
	}
	tok, err = p.tokenFromWeb(ctx, config)
	if err != nil {
		return nil, err
	}
	if err := saveToken(tokPath, tok); err != nil {
		fmt.Fprintf(p.Out, "Unable to cache oauth token: %v\n", err)
	}
	return tok, nil
}

func (p Prompt) tokenFromWeb(ctx context.Context, config *oauth2.Config) (*oauth2.Token, error) {
	authURL := config.AuthCodeURL("state-token", oauth2.AccessTypeOffline)
	fmt.Fprintf(p.Out, "Go to the following link in your browser:\n%v\n\n", authURL)
	fmt.Fprint(p.Out, "Enter authorization code: ")

	var authCode string
	if _, err := fmt.Fscan(p.In, &authCode); err != nil {
		return nil, fmt.Errorf("unable to read authorization code: %v", err)
	}

	tok, err := config.Exchange(ctx, authCode)
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve token from web: %v", err)
	}
	return tok, nil
}

func tokenFromFile(file string) (*oauth2.Token, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	tok := &oauth2.Token{}
	err = json.NewDecoder(f).Decode(tok)
	return tok, err
}

func saveToken(path string, token *oauth2.Token) error {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return err
	}
	defer f.Close()
	return json.NewEncoder(f).Encode(token)
}

// Client returns an HTTP client authorized for read-only calendar access.
func (p Prompt) Client(ctx context.Context) (*http.Client, error) {
	credPath, err := Path(credentialsFile)
	if err != nil {
		return nil, err
	}

	b, err := os.ReadFile(credPath)
	if err != nil {
		return nil, fmt.Errorf("unable to read credentials file: %v\nPlease create credentials.json in %s", err, filepath.Dir(credPath))
	}

	config, err := google.ConfigFromJSON(b, calendar.CalendarReadonlyScope)
	if err != nil {
		return nil, fmt.Errorf("unable to parse credentials: %v", err)
	}

	token, err := p.GetToken(ctx, config)
	if err != nil {
		return nil, err
	}

	return config.Client(ctx, token), nil
}

// GetCalendarService authorizes through the terminal and builds a calendar
// client.
func GetCalendarService() (*calendar.Service, error) {
	ctx := context.Background()
	client, err := DefaultPrompt.Client(ctx)
	if err != nil {
		return nil, err
	}

	srv, err := calendar.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("unable to create calendar service: %v", err)
	}

	return srv, nil
}
