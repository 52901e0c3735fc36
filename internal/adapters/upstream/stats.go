package upstream

import (
	"context"

	"github.com/courselight/courselight/internal/domain"
)

func (c *Client) GetOverview(ctx context.Context) (domain.StatsOverview, error) {
	result, err := c.overview.Get(ctx, struct{}{})
	if err != nil {
		return domain.StatsOverview{}, translateError(err)
	}
	return result.toDomain(), nil
}
