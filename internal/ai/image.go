package ai

import (
	"context"
)

// ImageInput describes the task an image should be generated for. ImageQuery
// is optional; when present (typically the stored dataAiHint) it steers the
// generation prompt.
type ImageInput struct {
	TaskTitle       string `json:"taskTitle"`
	TaskDescription string `json:"taskDescription,omitempty"`
	ImageQuery      string `json:"imageQuery,omitempty"`
}

// ImageResult carries the generated image as a data URI, ready to store on
// the task.
type ImageResult struct {
	ImageDataURI string `json:"imageDataUri"`
}

// GenerateImage requests a generated image for the task.
func (c *Client) GenerateImage(ctx context.Context, in ImageInput) (*ImageResult, error) {
	var out ImageResult
	if err := c.post(ctx, "/v1/generate-image", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ReviewInput asks the backend to critique a task's current image.
type ReviewInput struct {
	TaskTitle       string `json:"taskTitle"`
	TaskDescription string `json:"taskDescription,omitempty"`
	ImageURL        string `json:"imageUrl"`
}

// ReviewResult is the critique, optionally with a query for a better image.
type ReviewResult struct {
	Feedback            string `json:"feedback"`
	SuggestedImageQuery string `json:"suggestedImageQuery,omitempty"`
}

// ReviewImage requests feedback on how well the task's image fits it.
func (c *Client) ReviewImage(ctx context.Context, in ReviewInput) (*ReviewResult, error) {
	var out ReviewResult
	if err := c.post(ctx, "/v1/review-image", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
