package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/chirag807/pdf-annotation-frontend/pkg/models"
)

// CreateAnnotationRequest is the payload for creating an annotation.
type CreateAnnotationRequest struct {
	Document models.DocumentID     `json:"document"`
	Page     int                   `json:"page"`
	Type     models.AnnotationType `json:"type"`
	Content  string                `json:"content"`
	Color    string                `json:"color"`
}

// UpdateAnnotationRequest is the payload for editing annotation content.
// UserID names the editor so the server can record who last touched it.
type UpdateAnnotationRequest struct {
	Content string        `json:"content"`
	UserID  models.UserID `json:"userId"`
}

// DocumentAnnotations is the combined response for a document's annotation
// listing: the document itself plus its annotations in server order.
type DocumentAnnotations struct {
	Document    *models.Document     `json:"document"`
	Annotations []*models.Annotation `json:"annotations"`
}

// ListAnnotations returns a document together with all of its annotations.
func (c *Client) ListAnnotations(ctx context.Context, documentID models.DocumentID) (*DocumentAnnotations, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, fmt.Sprintf("/annotations/document/%s", documentID), nil)
	if err != nil {
		return nil, fmt.Errorf("list annotations request failed: %w", err)
	}

	var result DocumentAnnotations
	if err := decodeResponse(resp, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

// CreateAnnotation attaches a new annotation to a document and returns the
// created record as the server stored it.
func (c *Client) CreateAnnotation(ctx context.Context, req CreateAnnotationRequest) (*models.Annotation, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/annotations", req)
	if err != nil {
		return nil, fmt.Errorf("create annotation request failed: %w", err)
	}

	var result models.Annotation
	if err := decodeResponse(resp, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

// UpdateAnnotation replaces an annotation's content and records the editor.
func (c *Client) UpdateAnnotation(ctx context.Context, id models.AnnotationID, req UpdateAnnotationRequest) (*models.Annotation, error) {
	resp, err := c.doRequest(ctx, http.MethodPut, fmt.Sprintf("/annotations/%s", id), req)
	if err != nil {
		return nil, fmt.Errorf("update annotation request failed: %w", err)
	}

	var result models.Annotation
	if err := decodeResponse(resp, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

// DeleteAnnotation removes an annotation by ID.
func (c *Client) DeleteAnnotation(ctx context.Context, id models.AnnotationID) error {
	resp, err := c.doRequest(ctx, http.MethodDelete, fmt.Sprintf("/annotations/%s", id), nil)
	if err != nil {
		return fmt.Errorf("delete annotation request failed: %w", err)
	}

	return decodeResponse(resp, nil)
}
