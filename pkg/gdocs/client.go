// Package gdocs wraps the Google Docs and Drive APIs for estimate
// document creation, authenticated via a service account.
package gdocs

import (
	"context"
	"net/http"

	"github.com/rotisserie/eris"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/docs/v1"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

// Client defines the document operations used by the estimate generator.
type Client interface {
	// CreateDocument creates an empty document and returns its ID.
	CreateDocument(ctx context.Context, title string) (string, error)

	// InsertText inserts text at the start of the document body.
	InsertText(ctx context.Context, docID, text string) error

	// MoveToFolder relocates the document from the root into a folder.
	MoveToFolder(ctx context.Context, docID, folderID string) error
}

// Option configures the client.
type Option func(*settings)

type settings struct {
	httpClient *http.Client
	endpoint   string
}

// WithHTTPClient supplies a pre-authenticated http.Client, bypassing
// service-account auth. Used in tests.
func WithHTTPClient(hc *http.Client) Option {
	return func(s *settings) {
		s.httpClient = hc
	}
}

// WithEndpoint overrides the API base URL for both services. Used in tests.
func WithEndpoint(url string) Option {
	return func(s *settings) {
		s.endpoint = url
	}
}

type apiClient struct {
	docs  *docs.Service
	drive *drive.Service
}

// NewClient creates a Docs/Drive client from service-account credentials
// JSON. A credential that does not parse is an error; callers treat that
// as the backend being unconfigured.
func NewClient(ctx context.Context, credentialsJSON []byte, opts ...Option) (Client, error) {
	var s settings
	for _, o := range opts {
		o(&s)
	}

	var svcOpts []option.ClientOption
	if s.httpClient != nil {
		svcOpts = append(svcOpts, option.WithHTTPClient(s.httpClient))
	} else {
		conf, err := google.JWTConfigFromJSON(credentialsJSON, docs.DocumentsScope, drive.DriveScope)
		if err != nil {
			return nil, eris.Wrap(err, "gdocs: parse service account credentials")
		}
		svcOpts = append(svcOpts, option.WithHTTPClient(conf.Client(ctx)))
	}
	if s.endpoint != "" {
		svcOpts = append(svcOpts, option.WithEndpoint(s.endpoint))
	}

	docsSvc, err := docs.NewService(ctx, svcOpts...)
	if err != nil {
		return nil, eris.Wrap(err, "gdocs: create docs service")
	}
	driveSvc, err := drive.NewService(ctx, svcOpts...)
	if err != nil {
		return nil, eris.Wrap(err, "gdocs: create drive service")
	}

	return &apiClient{docs: docsSvc, drive: driveSvc}, nil
}

func (c *apiClient) CreateDocument(ctx context.Context, title string) (string, error) {
	doc, err := c.docs.Documents.Create(&docs.Document{Title: title}).Context(ctx).Do()
	if err != nil {
		return "", eris.Wrap(err, "gdocs: create document")
	}
	if doc.DocumentId == "" {
		return "", eris.New("gdocs: create returned no document id")
	}
	return doc.DocumentId, nil
}

func (c *apiClient) InsertText(ctx context.Context, docID, text string) error {
	req := &docs.BatchUpdateDocumentRequest{
		Requests: []*docs.Request{
			{
				InsertText: &docs.InsertTextRequest{
					Location: &docs.Location{Index: 1},
					Text:     text,
				},
			},
		},
	}
	if _, err := c.docs.Documents.BatchUpdate(docID, req).Context(ctx).Do(); err != nil {
		return eris.Wrap(err, "gdocs: insert text")
	}
	return nil
}

func (c *apiClient) MoveToFolder(ctx context.Context, docID, folderID string) error {
	_, err := c.drive.Files.Update(docID, nil).
		AddParents(folderID).
		RemoveParents("root").
		Fields("id, parents").
		Context(ctx).
		Do()
	if err != nil {
		return eris.Wrap(err, "gdocs: move to folder")
	}
	return nil
}
