package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/ankit705yadav/skillCircle/pkg/logger"
)

const (
	perspectiveAPIURL = "https://commentanalyzer.googleapis.com/v1alpha1/comments:analyze"
	toxicityThreshold = 0.5
	moderationTimeout = 5 * time.Second
)

type perspectiveRequest struct {
	Comment struct {
		Text string `json:"text"`
	} `json:"comment"`
	Languages           []string            `json:"languages"`
	RequestedAttributes map[string]struct{} `json:"requestedAttributes"`
}

type perspectiveResponse struct {
	AttributeScores map[string]struct {
		SummaryScore struct {
			Value float64 `json:"value"`
		} `json:"summaryScore"`
	} `json:"attributeScores"`
}

// ModerationService scores text against the Perspective API. It fails
// open: with no API key configured, or on any API error, content is
// allowed rather than legitimate posts getting blocked by an outage.
type ModerationService struct {
	apiKey string
	client *http.Client
}

func NewModerationService(apiKey string) *ModerationService {
	return &ModerationService{
		apiKey: apiKey,
		client: &http.Client{Timeout: moderationTimeout},
	}
}

// IsInappropriate reports whether the text scores above the toxicity
// threshold.
func (s *ModerationService) IsInappropriate(text string) bool {
	if s.apiKey == "" || strings.TrimSpace(text) == "" {
		return false
	}

	var req perspectiveRequest
	req.Comment.Text = text
	req.Languages = []string{"en"}
	req.RequestedAttributes = map[string]struct{}{"TOXICITY": {}}

	body, err := json.Marshal(req)
	if err != nil {
		return false
	}

	url := fmt.Sprintf("%s?key=%s", perspectiveAPIURL, s.apiKey)
	resp, err := s.client.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		logger.Warn().Err(err).Msg("Perspective API unreachable, allowing content")
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logger.Warn().Int("status", resp.StatusCode).Msg("Perspective API call failed, allowing content")
		return false
	}

	var parsed perspectiveResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return false
	}

	score := parsed.AttributeScores["TOXICITY"].SummaryScore.Value
	logger.Debug().Float64("toxicity", score).Msg("Moderation score")
	return score > toxicityThreshold
}
