package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/bronsonhill/prompting-task-ISLM10002/internal/core/domain"
)

func newAdminFixture() (*AdminService, *stubGrantRepo, *stubAuditLog) {
	grants := &stubGrantRepo{}
	audit := &stubAuditLog{}
	return NewAdminService(grants, audit, zerolog.Nop()), grants, audit
}

func TestAdminService_Grant_Success(t *testing.T) {
	svc, grants, audit := newAdminFixture()

	grant, err := svc.Grant(context.Background(), "abcde", domain.LevelAdmin, "SUPER")
	if err != nil {
		t.Fatalf("grant: %v", err)
	}
	if grant.Code != "ABCDE" {
		t.Fatalf("code must be normalized, got %q", grant.Code)
	}
	if !grant.Active || grant.Level != domain.LevelAdmin || grant.GrantedBy != "SUPER" {
		t.Fatalf("unexpected grant: %+v", grant)
	}

	stored, err := grants.FindActive(context.Background(), "ABCDE")
	if err != nil {
		t.Fatalf("find active: %v", err)
	}
	if stored.Level != domain.LevelAdmin {
		t.Fatalf("unexpected stored level: %s", stored.Level)
	}

	events := audit.byAction(domain.ActionAdminGrant)
	if len(events) != 1 {
		t.Fatalf("expected exactly one admin_grant event, got %d", len(events))
	}
	if events[0].actorCode != "SUPER" || events[0].payload["code"] != "ABCDE" {
		t.Fatalf("unexpected event: %+v", events[0])
	}
}

func TestAdminService_Grant_InvalidInput(t *testing.T) {
	svc, _, audit := newAdminFixture()

	if _, err := svc.Grant(context.Background(), "ABC", domain.LevelAdmin, "SUPER"); !errors.Is(err, domain.ErrInvalidCode) {
		t.Fatalf("expected ErrInvalidCode, got %v", err)
	}
	if _, err := svc.Grant(context.Background(), "ABCDE", domain.AdminLevel("owner"), "SUPER"); err == nil {
		t.Fatalf("expected error for invalid level")
	}
	if _, err := svc.Grant(context.Background(), "ABCDE", domain.LevelNone, "SUPER"); err == nil {
		t.Fatalf("granting level none must fail")
	}
	if len(audit.events) != 0 {
		t.Fatalf("rejected grants must not be audited")
	}
}

func TestAdminService_Grant_AlreadyGranted(t *testing.T) {
	svc, _, audit := newAdminFixture()

	if _, err := svc.Grant(context.Background(), "ABCDE", domain.LevelAdmin, "SUPER"); err != nil {
		t.Fatalf("first grant: %v", err)
	}
	if _, err := svc.Grant(context.Background(), "ABCDE", domain.LevelSuperAdmin, "SUPER"); !errors.Is(err, domain.ErrAlreadyGranted) {
		t.Fatalf("expected ErrAlreadyGranted, got %v", err)
	}
	if len(audit.byAction(domain.ActionAdminGrant)) != 1 {
		t.Fatalf("the failed grant must not add an audit event")
	}
}

func TestAdminService_Grant_AuditFailureAborts(t *testing.T) {
	svc, grants, audit := newAdminFixture()
	audit.failWith = domain.ErrAuditWrite

	if _, err := svc.Grant(context.Background(), "ABCDE", domain.LevelAdmin, "SUPER"); !errors.Is(err, domain.ErrAuditWrite) {
		t.Fatalf("expected ErrAuditWrite, got %v", err)
	}
	if _, err := grants.FindActive(context.Background(), "ABCDE"); !errors.Is(err, domain.ErrNotActive) {
		t.Fatalf("grant must not be applied when the audit write fails")
	}
}

func TestAdminService_Revoke_Success(t *testing.T) {
	svc, grants, audit := newAdminFixture()

	if _, err := svc.Grant(context.Background(), "ABCDE", domain.LevelAdmin, "SUPER"); err != nil {
		t.Fatalf("grant: %v", err)
	}
	if err := svc.Revoke(context.Background(), "abcde", "SUPER"); err != nil {
		t.Fatalf("revoke: %v", err)
	}

	if _, err := grants.FindActive(context.Background(), "ABCDE"); !errors.Is(err, domain.ErrNotActive) {
		t.Fatalf("expected no active grant after revoke")
	}

	// Soft delete: the revoked row stays queryable with its metadata.
	all, _ := grants.List(context.Background(), true)
	if len(all) != 1 {
		t.Fatalf("expected the revoked grant to survive, got %d rows", len(all))
	}
	if all[0].Active || all[0].RevokedBy != "SUPER" || all[0].RevokedAt == nil {
		t.Fatalf("revocation metadata missing: %+v", all[0])
	}

	if len(audit.byAction(domain.ActionAdminRevoke)) != 1 {
		t.Fatalf("expected exactly one admin_revoke event")
	}
}

func TestAdminService_Revoke_NotActive(t *testing.T) {
	svc, _, _ := newAdminFixture()
	if err := svc.Revoke(context.Background(), "ABCDE", "SUPER"); !errors.Is(err, domain.ErrNotActive) {
		t.Fatalf("expected ErrNotActive, got %v", err)
	}
}

func TestAdminService_Revoke_SuperAdminProtected(t *testing.T) {
	svc, grants, audit := newAdminFixture()
	grants.grants = append(grants.grants, &domain.AdminGrant{Code: "ROOT1", Level: domain.LevelSuperAdmin, Active: true})

	if err := svc.Revoke(context.Background(), "ROOT1", "ROOT2"); !errors.Is(err, domain.ErrCannotRevokeSuperAdmin) {
		t.Fatalf("expected ErrCannotRevokeSuperAdmin, got %v", err)
	}
	if _, err := grants.FindActive(context.Background(), "ROOT1"); err != nil {
		t.Fatalf("super_admin grant must stay active: %v", err)
	}
	if len(audit.events) != 0 {
		t.Fatalf("a blocked revoke must not be audited")
	}
}

func TestAdminService_Revoke_AuditFailureAborts(t *testing.T) {
	svc, grants, audit := newAdminFixture()
	if _, err := svc.Grant(context.Background(), "ABCDE", domain.LevelAdmin, "SUPER"); err != nil {
		t.Fatalf("grant: %v", err)
	}
	audit.failWith = domain.ErrAuditWrite

	if err := svc.Revoke(context.Background(), "ABCDE", "SUPER"); !errors.Is(err, domain.ErrAuditWrite) {
		t.Fatalf("expected ErrAuditWrite, got %v", err)
	}
	if _, err := grants.FindActive(context.Background(), "ABCDE"); err != nil {
		t.Fatalf("grant must stay active when the audit write fails: %v", err)
	}
}

func TestAdminService_GrantRevokeGrantCycle(t *testing.T) {
	svc, grants, _ := newAdminFixture()

	if _, err := svc.Grant(context.Background(), "ABCDE", domain.LevelAdmin, "SUPER"); err != nil {
		t.Fatalf("grant: %v", err)
	}
	if err := svc.Revoke(context.Background(), "ABCDE", "SUPER"); err != nil {
		t.Fatalf("revoke: %v", err)
	}
	if _, err := svc.Grant(context.Background(), "ABCDE", domain.LevelSuperAdmin, "SUPER"); err != nil {
		t.Fatalf("re-grant: %v", err)
	}

	active, err := grants.FindActive(context.Background(), "ABCDE")
	if err != nil {
		t.Fatalf("find active: %v", err)
	}
	if active.Level != domain.LevelSuperAdmin {
		t.Fatalf("expected the new level, got %s", active.Level)
	}

	all, _ := grants.List(context.Background(), true)
	if len(all) != 2 {
		t.Fatalf("history must keep both grants, got %d", len(all))
	}
}

func TestAdminService_CurrentLevel(t *testing.T) {
	svc, grants, _ := newAdminFixture()

	level, err := svc.CurrentLevel(context.Background(), "ABCDE")
	if err != nil {
		t.Fatalf("current level: %v", err)
	}
	if level != domain.LevelNone {
		t.Fatalf("expected none, got %s", level)
	}

	grants.grants = append(grants.grants, &domain.AdminGrant{Code: "ABCDE", Level: domain.LevelAdmin, Active: true, GrantedAt: time.Now()})
	level, err = svc.CurrentLevel(context.Background(), "abcde")
	if err != nil {
		t.Fatalf("current level: %v", err)
	}
	if level != domain.LevelAdmin {
		t.Fatalf("expected admin, got %s", level)
	}
}
