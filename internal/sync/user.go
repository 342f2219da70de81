package sync

import (
	"context"
	"fmt"
	"strings"

	"github.com/Paashik/MyIS-sub000/internal/legacy"
	"github.com/Paashik/MyIS-sub000/internal/models"
)

// roleMatcher resolves the free-form role tokens legacy user rows carry
// against the local role dictionary. Tokens are matched case-insensitively
// by role code or name; the legacy role catalog expands numeric tokens to
// names first. Tokens nobody recognizes are dropped without error.
type roleMatcher struct {
	byToken map[string]models.Role
	// legacyNames maps lowercased legacy role ids/codes to role names, so a
	// token like "12" still lands on the right local role.
	legacyNames map[string]string
}

func newRoleMatcher(local []models.Role, catalog []legacy.RoleRow) *roleMatcher {
	m := &roleMatcher{
		byToken:     make(map[string]models.Role, len(local)*2),
		legacyNames: make(map[string]string, len(catalog)),
	}
	for _, r := range local {
		m.byToken[strings.ToLower(strings.TrimSpace(r.Code))] = r
		m.byToken[strings.ToLower(strings.TrimSpace(r.Name))] = r
	}
	for _, r := range catalog {
		if code := strings.ToLower(strings.TrimSpace(r.Code)); code != "" {
			m.legacyNames[code] = strings.TrimSpace(r.Name)
		}
	}
	return m
}

// Match splits the raw role field on commas, semicolons and whitespace and
// resolves each token. Unresolved tokens are silently dropped.
func (m *roleMatcher) Match(raw string) []models.Role {
	tokens := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ';' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	var roles []models.Role
	seen := make(map[string]bool)
	for _, tok := range tokens {
		key := strings.ToLower(strings.TrimSpace(tok))
		if key == "" {
			continue
		}
		role, ok := m.byToken[key]
		if !ok {
			if name, expanded := m.legacyNames[key]; expanded {
				role, ok = m.byToken[strings.ToLower(name)]
			}
		}
		if !ok || seen[role.ID] {
			continue
		}
		seen[role.ID] = true
		roles = append(roles, role)
	}
	return roles
}

// NewUserHandler syncs application accounts, adopting by login. The role
// field of each row is matched against the local role dictionary; roles the
// dictionary does not know are dropped, not errors.
func NewUserHandler(stores Stores, gateway legacy.Gateway) Handler {
	var matcher *roleMatcher

	return newFlatHandler(stores, flatSpec[legacy.UserRow]{
		scope:        ScopeUsers,
		entityType:   models.EntityTypeUser,
		externalKind: models.KindUser,
		sourceEntity: models.KindUser,
		counterKey:   "User",
		read:         gateway.ReadUsersDelta,
		externalID:   func(r legacy.UserRow) int64 { return r.ID },
		prepare: func(ctx context.Context, s Stores, run *Run, rows []legacy.UserRow) error {
			local, err := s.Users().ListRoles(ctx)
			if err != nil {
				return fmt.Errorf("failed to list roles: %w", err)
			}
			catalog, err := gateway.ReadRoles(ctx, run.ConnectionID)
			if err != nil {
				return fmt.Errorf("failed to read legacy roles: %w", err)
			}
			matcher = newRoleMatcher(local, catalog)
			return nil
		},
		adopt: NaturalKeyStrategy[legacy.UserRow]{
			Name: "user-by-login",
			Find: func(ctx context.Context, s Stores, row legacy.UserRow) (string, bool, error) {
				login := strings.TrimSpace(row.Login)
				if login == "" {
					return "", false, nil
				}
				existing, err := s.Users().ByLogin(ctx, login)
				if err != nil || existing == nil {
					return "", false, err
				}
				return existing.ID, true, nil
			},
		},
		create: func(ctx context.Context, s Stores, run *Run, row legacy.UserRow) (string, error) {
			u, err := models.NewUser(row.Login, row.FullName, optional(row.Email))
			if err != nil {
				return "", err
			}
			u.AssignRoles(matcher.Match(row.Roles))
			if run.DryRun {
				return u.ID, nil
			}
			return u.ID, s.Users().Create(ctx, u)
		},
		update: func(ctx context.Context, s Stores, run *Run, localID string, row legacy.UserRow) error {
			list, err := s.Users().ByIDs(ctx, []string{localID})
			if err != nil {
				return err
			}
			if len(list) == 0 {
				return fmt.Errorf("linked user %s not found", localID)
			}
			u := list[0]
			u.Update(row.FullName, optional(row.Email))
			u.AssignRoles(matcher.Match(row.Roles))
			if run.DryRun {
				return nil
			}
			return s.Users().Update(ctx, &u)
		},
		deleter: func(s Stores) EntityDeleter {
			return deleterFuncs{
				del: func(ctx context.Context, id string) error {
					return s.Users().Delete(ctx, id)
				},
				deact: func(ctx context.Context, id string) error {
					return s.Users().Deactivate(ctx, id)
				},
			}
		},
	})
}
