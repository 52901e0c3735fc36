package app

import (
	"context"

	"github.com/courselight/courselight/internal/domain"
)

type contentManager interface {
	GetArticles(ctx context.Context) ([]domain.Article, error)
	CreateArticle(ctx context.Context, article domain.Article) (domain.Article, error)
	UpdateArticle(ctx context.Context, article domain.Article) (domain.Article, error)
	DeleteArticle(ctx context.Context, articleID string) error

	GetPlacements(ctx context.Context) ([]domain.Placement, error)
	CreatePlacement(ctx context.Context, placement domain.Placement) (domain.Placement, error)
	DeletePlacement(ctx context.Context, placementID string) error

	GetContacts(ctx context.Context) ([]domain.Contact, error)
	DeleteContact(ctx context.Context, contactID string) error

	CreateEnquiry(ctx context.Context, enquiry domain.Enquiry) (domain.Enquiry, error)
}

type GetArticles func(ctx context.Context) ([]domain.Article, error)
type SaveArticle func(ctx context.Context, session domain.Session, article domain.Article) (domain.Article, error)
type DeleteArticle func(ctx context.Context, session domain.Session, articleID string) error

type GetPlacements func(ctx context.Context) ([]domain.Placement, error)
type SavePlacement func(ctx context.Context, session domain.Session, placement domain.Placement) (domain.Placement, error)
type DeletePlacement func(ctx context.Context, session domain.Session, placementID string) error

type GetContacts func(ctx context.Context, session domain.Session) ([]domain.Contact, error)
type DeleteContact func(ctx context.Context, session domain.Session, contactID string) error

type CreateEnquiry func(ctx context.Context, enquiry domain.Enquiry) (domain.Enquiry, error)

// Articles and placements are public to read and managed by staff.

func BuildGetArticles(content contentManager) GetArticles {
	return func(ctx context.Context) ([]domain.Article, error) {
		return content.GetArticles(ctx)
	}
}

func BuildCreateArticle(content contentManager) SaveArticle {
	return func(ctx context.Context, session domain.Session, article domain.Article) (domain.Article, error) {
		if err := requireRole(session, domain.RoleAdmin, domain.RoleEmployee); err != nil {
			return domain.Article{}, err
		}
		return content.CreateArticle(ctx, article)
	}
}

func BuildUpdateArticle(content contentManager) SaveArticle {
	return func(ctx context.Context, session domain.Session, article domain.Article) (domain.Article, error) {
		if err := requireRole(session, domain.RoleAdmin, domain.RoleEmployee); err != nil {
			return domain.Article{}, err
		}
		return content.UpdateArticle(ctx, article)
	}
}

func BuildDeleteArticle(content contentManager) DeleteArticle {
	return func(ctx context.Context, session domain.Session, articleID string) error {
		if err := requireRole(session, domain.RoleAdmin, domain.RoleEmployee); err != nil {
			return err
		}
		return content.DeleteArticle(ctx, articleID)
	}
}

func BuildGetPlacements(content contentManager) GetPlacements {
	return func(ctx context.Context) ([]domain.Placement, error) {
		return content.GetPlacements(ctx)
	}
}

func BuildCreatePlacement(content contentManager) SavePlacement {
	return func(ctx context.Context, session domain.Session, placement domain.Placement) (domain.Placement, error) {
		if err := requireRole(session, domain.RoleAdmin, domain.RoleEmployee); err != nil {
			return domain.Placement{}, err
		}
		return content.CreatePlacement(ctx, placement)
	}
}

func BuildDeletePlacement(content contentManager) DeletePlacement {
	return func(ctx context.Context, session domain.Session, placementID string) error {
		if err := requireRole(session, domain.RoleAdmin, domain.RoleEmployee); err != nil {
			return err
		}
		return content.DeletePlacement(ctx, placementID)
	}
}

func BuildGetContacts(content contentManager) GetContacts {
	return func(ctx context.Context, session domain.Session) ([]domain.Contact, error) {
		if err := requireRole(session, domain.RoleAdmin); err != nil {
			return nil, err
		}
		return content.GetContacts(ctx)
	}
}

func BuildDeleteContact(content contentManager) DeleteContact {
	return func(ctx context.Context, session domain.Session, contactID string) error {
		if err := requireRole(session, domain.RoleAdmin); err != nil {
			return err
		}
		return content.DeleteContact(ctx, contactID)
	}
}

// Enquiries come from the public enquiry form, no session required.
func BuildCreateEnquiry(content contentManager) CreateEnquiry {
	return func(ctx context.Context, enquiry domain.Enquiry) (domain.Enquiry, error) {
		return content.CreateEnquiry(ctx, enquiry)
	}
}
