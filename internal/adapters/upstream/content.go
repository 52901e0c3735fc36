package upstream

import (
	"context"
	"fmt"

	"github.com/courselight/courselight/internal/domain"
)

func (c *Client) GetArticles(ctx context.Context) ([]domain.Article, error) {
	wireArticles, err := c.articles.Get(ctx, struct{}{})
	if err != nil {
		return nil, translateError(err)
	}

	articles := make([]domain.Article, 0, len(wireArticles))
	for _, wireArticle := range wireArticles {
		articles = append(articles, wireArticle.toDomain())
	}
	return articles, nil
}

func (c *Client) CreateArticle(ctx context.Context, article domain.Article) (domain.Article, error) {
	result, err := c.createArticle.Do(ctx, articleToWire(article))
	if err != nil {
		return domain.Article{}, translateError(err)
	}
	return result.toDomain(), nil
}

func (c *Client) UpdateArticle(ctx context.Context, article domain.Article) (domain.Article, error) {
	result, err := c.updateArticle.Do(ctx, articleToWire(article))
	if err != nil {
		return domain.Article{}, translateError(err)
	}
	return result.toDomain(), nil
}

func (c *Client) DeleteArticle(ctx context.Context, articleID string) error {
	if _, err := c.deleteArticle.Do(ctx, articleID); err != nil {
		return translateError(err)
	}
	return nil
}

func (c *Client) GetPlacements(ctx context.Context) ([]domain.Placement, error) {
	wirePlacements, err := c.placements.Get(ctx, struct{}{})
	if err != nil {
		return nil, translateError(err)
	}

	placements := make([]domain.Placement, 0, len(wirePlacements))
	for _, wirePlacement := range wirePlacements {
		placements = append(placements, wirePlacement.toDomain())
	}
	return placements, nil
}

func (c *Client) CreatePlacement(ctx context.Context, placement domain.Placement) (domain.Placement, error) {
	result, err := c.createPlacement.Do(ctx, placementToWire(placement))
	if err != nil {
		return domain.Placement{}, translateError(err)
	}
	return result.toDomain(), nil
}

func (c *Client) DeletePlacement(ctx context.Context, placementID string) error {
	if _, err := c.deletePlacement.Do(ctx, placementID); err != nil {
		return translateError(err)
	}
	return nil
}

func (c *Client) GetContacts(ctx context.Context) ([]domain.Contact, error) {
	wireContacts, err := c.contacts.Get(ctx, struct{}{})
	if err != nil {
		return nil, translateError(err)
	}

	contacts := make([]domain.Contact, 0, len(wireContacts))
	for _, wireContact := range wireContacts {
		contacts = append(contacts, wireContact.toDomain())
	}
	return contacts, nil
}

func (c *Client) DeleteContact(ctx context.Context, contactID string) error {
	if _, err := c.deleteContact.Do(ctx, contactID); err != nil {
		return translateError(err)
	}
	return nil
}

func (c *Client) CreateEnquiry(ctx context.Context, enquiry domain.Enquiry) (domain.Enquiry, error) {
	if enquiry.Email == "" && enquiry.Phone == "" {
		return domain.Enquiry{}, fmt.Errorf("enquiry needs an email or a phone number")
	}

	result, err := c.createEnquiry.Do(ctx, enquiryToWire(enquiry))
	if err != nil {
		return domain.Enquiry{}, translateError(err)
	}
	return result.toDomain(), nil
}
