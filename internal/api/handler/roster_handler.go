package handler

import (
	"Vanguard/internal/pkg/response"
	"Vanguard/internal/repository"
	"Vanguard/internal/service"

	"github.com/gin-gonic/gin"
)

type RosterHandler struct {
	rosterRepo repository.RosterRepo
}

func NewRosterHandler(rosterRepo repository.RosterRepo) *RosterHandler {
	return &RosterHandler{rosterRepo: rosterRepo}
}

// List 返回全量花名册
func (s *RosterHandler) List(c *gin.Context) {
	response.Success(c, s.rosterRepo.All())
}

// GetByID 按成员ID查询
func (s *RosterHandler) GetByID(c *gin.Context) {
	member, ok := s.rosterRepo.GetByID(c.Param("member_id"))
	if !ok {
		response.Error(c, service.ErrRosterMemberNotFound)
		return
	}
	response.Success(c, member)
}
