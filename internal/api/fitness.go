package api

import (
	"context"
	"net/http"

	"github.com/pageza/fridge/internal/types"
)

// FitnessService covers the /fitness endpoints.
type FitnessService struct {
	client *Client
}

// Goals returns the caller's fitness goals.
func (s *FitnessService) Goals(ctx context.Context) (*types.FitnessGoals, error) {
	var goals types.FitnessGoals
	err := s.client.do(ctx, operation{
		resource: "fitness", action: "goals",
		method: http.MethodGet, path: "/fitness/goals",
		fallback: "Failed to fetch fitness goals",
	}, nil, &goals)
	if err != nil {
		return nil, err
	}
	return &goals, nil
}

// UpdateGoals stores goals and returns them as the backend saved them.
func (s *FitnessService) UpdateGoals(ctx context.Context, goals types.FitnessGoals) (*types.FitnessGoals, error) {
	if goals.Allergies == nil {
		goals.Allergies = []string{}
	}
	var saved types.FitnessGoals
	err := s.client.do(ctx, operation{
		resource: "fitness", action: "update-goals",
		method: http.MethodPost, path: "/fitness/goals",
		fallback: "Failed to update fitness goals",
	}, goals, &saved)
	if err != nil {
		return nil, err
	}
	return &saved, nil
}
