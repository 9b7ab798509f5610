package utils

import (
	"elearn/config"
	courseModels "elearn/models/course"
	"fmt"
	"log"
	"time"

	"github.com/go-resty/resty/v2"
)

// CertificateRenderer renders certificate artifacts through an external PDF
// render service. When no service is configured it falls back to a local
// artifact path so issuance still works in development.
type CertificateRenderer struct {
	client *resty.Client
}

// NewCertificateRenderer builds the renderer with sane HTTP defaults
func NewCertificateRenderer() *CertificateRenderer {
	client := resty.New().
		SetTimeout(15 * time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(2 * time.Second)
	return &CertificateRenderer{client: client}
}

type renderRequest struct {
	CertificateNumber string `json:"certificate_number"`
	LearnerName       string `json:"learner_name"`
	CourseTitle       string `json:"course_title"`
	FinalScore        int    `json:"final_score"`
	IssuedAt          string `json:"issued_at"`
}

type renderResponse struct {
	URL string `json:"url"`
}

// RenderCertificate returns the downloadable artifact URL for a certificate
func (r *CertificateRenderer) RenderCertificate(cert *courseModels.Certificate, courseTitle, learnerName string) (string, error) {
	if config.AppConfig == nil || config.AppConfig.CertRenderURL == "" {
		return fmt.Sprintf("/certificates/%s.pdf", cert.CertificateNumber), nil
	}

	var result renderResponse
	resp, err := r.client.R().
		SetHeader("Content-Type", "application/json").
		SetHeader("Authorization", "Bearer "+config.AppConfig.CertRenderKey).
		SetBody(renderRequest{
			CertificateNumber: cert.CertificateNumber,
			LearnerName:       learnerName,
			CourseTitle:       courseTitle,
			FinalScore:        cert.FinalScore,
			IssuedAt:          cert.IssuedAt.Format(time.RFC3339),
		}).
		SetResult(&result).
		Post(config.AppConfig.CertRenderURL)
	if err != nil {
		return "", fmt.Errorf("render service call failed: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("render service returned %s", resp.Status())
	}
	if result.URL == "" {
		// Keep issuance alive even when the render service misbehaves
		log.Printf("Render service returned empty URL for certificate %s, using local path", cert.CertificateNumber)
		return fmt.Sprintf("/certificates/%s.pdf", cert.CertificateNumber), nil
	}
	return result.URL, nil
}
