package repository

import (
	"Vanguard/internal/model"
	"strings"
)

// RosterRepo 花名册只读仓库
type RosterRepo interface {
	All() []*model.RosterMember
	GetByID(id string) (*model.RosterMember, bool)
	// MatchName 按全名或名字做大小写不敏感匹配，可能返回多个候选
	MatchName(token string) []*model.RosterMember
}

type rosterRepoImpl struct {
	members []*model.RosterMember
	byID    map[string]*model.RosterMember
}

func NewRosterRepo(members []*model.RosterMember) RosterRepo {
	r := &rosterRepoImpl{byID: make(map[string]*model.RosterMember, len(members))}
	for _, m := range members {
		cp := *m
		if cp.FullName == "" {
			cp.FullName = strings.TrimSpace(cp.FirstName + " " + cp.LastName)
		}
		r.members = append(r.members, &cp)
		r.byID[cp.ID] = &cp
	}
	return r
}

func (r *rosterRepoImpl) All() []*model.RosterMember {
	res := make([]*model.RosterMember, 0, len(r.members))
	for _, m := range r.members {
		cp := *m
		res = append(res, &cp)
	}
	return res
}

func (r *rosterRepoImpl) GetByID(id string) (*model.RosterMember, bool) {
	m, ok := r.byID[id]
	if !ok {
		return nil, false
	}
	cp := *m
	return &cp, true
}

func (r *rosterRepoImpl) MatchName(token string) []*model.RosterMember {
	needle := strings.ToLower(strings.TrimSpace(token))
	if needle == "" {
		return nil
	}

	var res []*model.RosterMember
	for _, m := range r.members {
		full := strings.ToLower(m.FullName)
		first := strings.ToLower(m.FirstName)
		if strings.Contains(full, needle) || strings.HasPrefix(first, needle) {
			cp := *m
			res = append(res, &cp)
		}
	}
	return res
}
