package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/krushnaz/teachove-fees/internal/models"
)

// ClassesBySchool lists all classrooms of a school. No pagination; the full
// class list for a school is small enough to load in one call.
func (c *Client) ClassesBySchool(ctx context.Context, schoolID string) ([]models.Classroom, error) {
	var resp struct {
		Classes []models.Classroom `json:"classes"`
	}
	path := fmt.Sprintf("/api/v1/schools/%s/classes", url.PathEscape(schoolID))
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	if resp.Classes == nil {
		resp.Classes = []models.Classroom{}
	}
	return resp.Classes, nil
}
