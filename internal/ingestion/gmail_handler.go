package ingestion

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
)

// GmailHandler fetches resume attachments from a Gmail inbox into the
// uploads directory, where the batch pipeline picks them up like any
// other upload.
type GmailHandler struct {
	service    *gmail.Service
	uploadsDir string
}

// NewGmailHandler creates a Gmail handler using OAuth credentials and
// a cached token at the given paths.
func NewGmailHandler(ctx context.Context, uploadsDir, credentialsPath, tokenPath string) (*GmailHandler, error) {
	b, err := os.ReadFile(credentialsPath)
	if err != nil {
		return nil, fmt.Errorf("unable to read credentials file: %w", err)
	}

	config, err := google.ConfigFromJSON(b, gmail.GmailReadonlyScope)
	if err != nil {
		return nil, fmt.Errorf("unable to parse credentials: %w", err)
	}

	client, err := oauthClient(ctx, config, tokenPath)
	if err != nil {
		return nil, err
	}

	srv, err := gmail.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("unable to create Gmail client: %w", err)
	}

	return &GmailHandler{
		service:    srv,
		uploadsDir: uploadsDir,
	}, nil
}

// oauthClient builds an HTTP client from a cached token, running the
// interactive authorization flow when none exists yet.
func oauthClient(ctx context.Context, config *oauth2.Config, tokenPath string) (*http.Client, error) {
	tok, err := tokenFromFile(tokenPath)
	if err != nil {
		tok, err = tokenFromWeb(ctx, config)
		if err != nil {
			return nil, err
		}
		if err := saveToken(tokenPath, tok); err != nil {
			log.Printf("Unable to cache oauth token: %v", err)
		}
	}
	return config.Client(ctx, tok), nil
}

// tokenFromWeb requests a token interactively.
func tokenFromWeb(ctx context.Context, config *oauth2.Config) (*oauth2.Token, error) {
	authURL := config.AuthCodeURL("state-token", oauth2.AccessTypeOffline)
	fmt.Printf("Go to the following link in your browser then type the authorization code:\n%v\n", authURL)

	var authCode string
	if _, err := fmt.Scan(&authCode); err != nil {
		return nil, fmt.Errorf("unable to read authorization code: %w", err)
	}

	tok, err := config.Exchange(ctx, authCode)
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve token from web: %w", err)
	}
	return tok, nil
}

func tokenFromFile(path string) (*oauth2.Token, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	tok := &oauth2.Token{}
	err = json.NewDecoder(f).Decode(tok)
	return tok, err
}

func saveToken(path string, token *oauth2.Token) error {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer f.Close()
	return json.NewEncoder(f).Encode(token)
}

// FetchAttachments downloads supported attachments from messages
// matching the subject filter into the uploads directory. Per-message
// and per-attachment failures are logged and skipped; only a failure
// to list messages aborts the fetch.
func (gh *GmailHandler) FetchAttachments(ctx context.Context, subject string) (int, error) {
	if err := os.MkdirAll(gh.uploadsDir, 0755); err != nil {
		return 0, fmt.Errorf("failed to create uploads directory: %w", err)
	}

	user := "me"
	query := fmt.Sprintf("subject:%s has:attachment", subject)

	r, err := gh.service.Users.Messages.List(user).Q(query).Context(ctx).Do()
	if err != nil {
		return 0, fmt.Errorf("unable to retrieve messages: %w", err)
	}

	if len(r.Messages) == 0 {
		return 0, fmt.Errorf("no messages found with subject: %s", subject)
	}

	saved := 0
	for _, msg := range r.Messages {
		if ctx.Err() != nil {
			return saved, ctx.Err()
		}

		message, err := gh.service.Users.Messages.Get(user, msg.Id).Context(ctx).Do()
		if err != nil {
			log.Printf("Unable to retrieve message %s: %v", msg.Id, err)
			continue
		}

		sender := extractSenderName(message)

		for _, part := range message.Payload.Parts {
			if part.Filename == "" || part.Body.AttachmentId == "" {
				continue
			}
			if !SupportedExt(part.Filename) {
				log.Printf("Skipping unsupported attachment: %s", part.Filename)
				continue
			}

			attachment, err := gh.service.Users.Messages.Attachments.Get(user, msg.Id, part.Body.AttachmentId).Context(ctx).Do()
			if err != nil {
				log.Printf("Unable to retrieve attachment: %v", err)
				continue
			}

			data, err := base64.URLEncoding.DecodeString(attachment.Data)
			if err != nil {
				log.Printf("Unable to decode attachment: %v", err)
				continue
			}

			// Prefix the sender so the filename-derived name fallback
			// has something to work with when the resume text hides
			// the candidate's name.
			filename := fmt.Sprintf("%s_%s", sender, filepath.Base(part.Filename))
			filePath := filepath.Join(gh.uploadsDir, filename)
			if err := os.WriteFile(filePath, data, 0644); err != nil {
				log.Printf("Unable to write file %s: %v", filePath, err)
				continue
			}

			log.Printf("Downloaded: %s", filename)
			saved++
		}
	}

	return saved, nil
}

// extractSenderName extracts the sender's name from email headers.
func extractSenderName(message *gmail.Message) string {
	for _, header := range message.Payload.Headers {
		if header.Name != "From" {
			continue
		}
		from := header.Value
		if idx := strings.Index(from, "<"); idx > 0 {
			name := strings.TrimSpace(from[:idx])
			return strings.ReplaceAll(name, " ", "_")
		}
		if idx := strings.Index(from, "@"); idx > 0 {
			return from[:idx]
		}
		return "unknown"
	}
	return "unknown"
}
