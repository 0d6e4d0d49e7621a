package issue

import (
	"github.com/nxtrohith/Micro-Task-sub000/internal/application/issue/usecases"
)

type LocationRequest struct {
	Address   string  `json:"address" binding:"max=500"`
	Latitude  float64 `json:"lat" binding:"gte=-90,lte=90"`
	Longitude float64 `json:"lng" binding:"gte=-180,lte=180"`
}

type CreateIssueRequest struct {
	Title       string          `json:"title" binding:"required,max=200"`
	Description string          `json:"description" binding:"max=5000"`
	Category    string          `json:"category" binding:"omitempty,max=50"`
	Severity    string          `json:"severity" binding:"required,oneof=low medium high critical"`
	Location    LocationRequest `json:"location"`
	ImageURLs   []string        `json:"image_urls" binding:"max=10,dive,url"`
}

func (r *CreateIssueRequest) ToCommand(reporterID string) usecases.CreateIssueCommand {
	return usecases.CreateIssueCommand{
		ReporterID:  reporterID,
		Title:       r.Title,
		Description: r.Description,
		Category:    r.Category,
		Severity:    r.Severity,
		Address:     r.Location.Address,
		Latitude:    r.Location.Latitude,
		Longitude:   r.Location.Longitude,
		ImageURLs:   r.ImageURLs,
	}
}

type ChangeStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=reported approved in_progress resolved"`
}
