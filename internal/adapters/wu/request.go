package wu

import (
	"bytes"
	"embed"
	"encoding/xml"
	"errors"
	"strings"
	"text/template"

	"github.com/google/uuid"
)

const (
	DefaultEndpoint    = "https://fe3.delivery.mp.microsoft.com/ClientWebService/client.asmx"
	DefaultReleaseType = "Retail"

	soapContentType = "application/soap+xml; charset=utf-8"
)

//go:embed templates/*.xml
var templateFS embed.FS

var envelopes = template.Must(template.New("envelopes").
	Funcs(template.FuncMap{"xml": escapeXML}).
	ParseFS(templateFS, "templates/*.xml"))

type GetCookieParams struct {
	MessageID string
	Endpoint  string
}

type SyncUpdatesParams struct {
	MessageID   string
	Endpoint    string
	Cookie      string
	CategoryID  string
	ReleaseType string
}

// BuildGetCookieRequest renders the envelope that asks the service for an
// encrypted session cookie.
func BuildGetCookieRequest(p GetCookieParams) ([]byte, error) {
	if p.MessageID == "" {
		p.MessageID = newMessageID()
	}
	if p.Endpoint == "" {
		p.Endpoint = DefaultEndpoint
	}

	return render("GetCookie.xml", p)
}

// BuildSyncUpdatesRequest renders the category query for one app category.
func BuildSyncUpdatesRequest(p SyncUpdatesParams) ([]byte, error) {
	if strings.TrimSpace(p.Cookie) == "" {
		return nil, errors.New("sync updates request: cookie is required")
	}
	if strings.TrimSpace(p.CategoryID) == "" {
		return nil, errors.New("sync updates request: category id is required")
	}
	if p.MessageID == "" {
		p.MessageID = newMessageID()
	}
	if p.Endpoint == "" {
		p.Endpoint = DefaultEndpoint
	}
	if p.ReleaseType == "" {
		p.ReleaseType = DefaultReleaseType
	}

	return render("SyncUpdates.xml", p)
}

func render(name string, data any) ([]byte, error) {
	var buf bytes.Buffer
	if err := envelopes.ExecuteTemplate(&buf, name, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func newMessageID() string {
	return "urn:uuid:" + uuid.NewString()
}

func escapeXML(value string) (string, error) {
	var buf strings.Builder
	if err := xml.EscapeText(&buf, []byte(value)); err != nil {
		return "", err
	}
	return buf.String(), nil
}
