package heritageapi

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"

	"github.com/heritage-explorer/internal/domain"
	"github.com/heritage-explorer/internal/domain/repository"
)

var _ repository.SubmissionRepository = (*Client)(nil)

// SubmitProposal отправляет предложение multipart-формой; изображения идут в поле "imagenes"
func (c *Client) SubmitProposal(ctx context.Context, p domain.Proposal) error {
	body, contentType, err := buildMultipart(p.Fields, "imagenes", p.Images)
	if err != nil {
		return fmt.Errorf("build proposal form: %w", err)
	}
	return c.do(ctx, request{
		endpoint:    "propuestas.create",
		method:      http.MethodPost,
		path:        "/propuestas",
		body:        body,
		contentType: contentType,
	}, nil)
}

// MyProposals возвращает предложения текущего пользователя
func (c *Client) MyProposals(ctx context.Context, page, limit int) (*domain.ProposalPage, error) {
	var result domain.ProposalPage
	err := c.do(ctx, request{
		endpoint: "propuestas.mine",
		method:   http.MethodGet,
		path:     "/propuestas/mias",
		query:    pageParams(page, limit),
	}, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// SendContact отправляет сообщение; вложения идут в поле "archivos"
func (c *Client) SendContact(ctx context.Context, msg domain.ContactMessage) error {
	fields := []domain.FormField{
		{Name: "email", Value: msg.Email},
		{Name: "asunto", Value: msg.Subject},
		{Name: "mensaje", Value: msg.Message},
	}
	body, contentType, err := buildMultipart(fields, "archivos", msg.Attachments)
	if err != nil {
		return fmt.Errorf("build contact form: %w", err)
	}
	return c.do(ctx, request{
		endpoint:    "contact",
		method:      http.MethodPost,
		path:        "/contact",
		body:        body,
		contentType: contentType,
	}, nil)
}

// buildMultipart пропускает пустые поля, как это делает форма на устройстве
func buildMultipart(fields []domain.FormField, fileField string, files []domain.Attachment) (io.Reader, string, error) {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)

	for _, f := range fields {
		if f.Value == "" {
			continue
		}
		if err := w.WriteField(f.Name, f.Value); err != nil {
			return nil, "", err
		}
	}

	for _, file := range files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`, fileField, escapeQuotes(file.Name)))
		ct := file.ContentType
		if ct == "" {
			ct = "application/octet-stream"
		}
		h.Set("Content-Type", ct)

		part, err := w.CreatePart(h)
		if err != nil {
			return nil, "", err
		}
		if file.Content != nil {
			if _, err := io.Copy(part, file.Content); err != nil {
				return nil, "", fmt.Errorf("copy %s: %w", file.Name, err)
			}
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return buf, w.FormDataContentType(), nil
}

func escapeQuotes(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if r == '"' || r == '\\' {
			out = append(out, '\\')
		}
		out = append(out, r)
	}
	return string(out)
}
