package service

import (
	"context"
	"encoding/json"

	"github.com/localtalent/console/internal/core/domain"
	"github.com/localtalent/console/internal/core/ports"
	"github.com/localtalent/console/internal/core/request"
)

const (
	pathUsers = "/auth/get-all-users"
	pathUser  = "/auth"
)

type UserService struct {
	helper *request.Helper
}

var _ ports.UserService = (*UserService)(nil)

func NewUserService(helper *request.Helper) *UserService {
	return &UserService{helper: helper}
}

func (s *UserService) List(ctx context.Context) ([]domain.User, bool) {
	return request.Get[[]domain.User](ctx, s.helper, pathUsers, request.Silent()).Get()
}

func (s *UserService) Delete(ctx context.Context, id domain.ID) bool {
	return request.Delete[json.RawMessage](ctx, s.helper, pathUser+"/"+id.String()).OK()
}
