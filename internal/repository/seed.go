package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/smarterworkco/GPT-UI/internal/domain"
)

// DemoUsername identifies the seeded demo account
const DemoUsername = "brad"

// DemoPasswordHasher turns the demo plaintext password into the stored form
type DemoPasswordHasher func(plain string) (string, error)

// Seed installs the demo account, business and documents. It is a no-op
// when the demo user already exists. Returns the demo business.
func Seed(ctx context.Context, repo Repository, hash DemoPasswordHasher) (*domain.Business, error) {
	if existing, err := repo.GetUserByUsername(ctx, DemoUsername); err == nil {
		return repo.GetBusiness(ctx, existing.ID)
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("check demo user: %w", err)
	}

	password, err := hash("demo123")
	if err != nil {
		return nil, fmt.Errorf("hash demo password: %w", err)
	}

	user, err := repo.CreateUser(ctx, domain.CreateUserInput{
		Username: DemoUsername,
		Email:    "brad@businesssystems.com",
		Password: password,
	})
	if err != nil {
		return nil, fmt.Errorf("create demo user: %w", err)
	}

	business, err := repo.CreateBusiness(ctx, domain.CreateBusinessInput{
		Name:        "Demo Business Inc",
		Description: "A sample business to demonstrate the BusinessAI Hub platform capabilities",
		Industry:    "professional-services",
		UserID:      user.ID,
	})
	if err != nil {
		return nil, fmt.Errorf("create demo business: %w", err)
	}

	for _, doc := range demoDocuments(business.ID) {
		if _, err := repo.CreateDocument(ctx, doc); err != nil {
			return nil, fmt.Errorf("create demo document %q: %w", doc.Title, err)
		}
	}

	return business, nil
}

func demoDocuments(businessID int64) []domain.CreateDocumentInput {
	return []domain.CreateDocumentInput{
		{
			Title:       "Employee Handbook 2024",
			Description: "Comprehensive guide covering company policies, procedures, and expectations for all employees",
			Category:    domain.DocumentCategoryHandbook,
			Status:      domain.DocumentStatusApproved,
			FileURL:     "/documents/employee-handbook-2024.pdf",
			Tags:        []string{"hr", "policies", "procedures"},
			BusinessID:  businessID,
		},
		{
			Title:       "Customer Service SOP",
			Description: "Standard operating procedures for handling customer inquiries, complaints, and service requests",
			Category:    domain.DocumentCategorySOP,
			Status:      domain.DocumentStatusReview,
			FileURL:     "/documents/customer-service-sop.pdf",
			Tags:        []string{"customer-service", "procedures"},
			BusinessID:  businessID,
		},
		{
			Title:       "Data Privacy Policy",
			Description: "Policy outlining how we collect, use, and protect customer and employee data in compliance with regulations",
			Category:    domain.DocumentCategoryPolicy,
			Status:      domain.DocumentStatusApproved,
			FileURL:     "/documents/data-privacy-policy.pdf",
			Tags:        []string{"privacy", "compliance", "legal"},
			BusinessID:  businessID,
		},
		{
			Title:       "Q1 Marketing Campaign",
			Description: "Marketing materials and campaign strategy for the first quarter product launch",
			Category:    domain.DocumentCategoryMarketing,
			Status:      domain.DocumentStatusDraft,
			FileURL:     "/documents/q1-marketing-campaign.pdf",
			Tags:        []string{"marketing", "campaign", "q1"},
			BusinessID:  businessID,
		},
	}
}
