package services

import (
	"testing"
	"time"

	"github.com/marcisebestyen/ExamManager-sub001/internal/domain/models"
	"github.com/marcisebestyen/ExamManager-sub001/internal/error/code"
)

func TestLoginIssuesValidToken(t *testing.T) {
	db, cfg := newTestDB(t)
	service := NewJWTService(cfg, db)
	operator := seedOperator(t, db, "jsmith", "correct-horse", models.RoleAdmin)

	result, err := service.Login("jsmith", "correct-horse")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if result.UserID != operator.ID || result.Role != models.RoleAdmin || result.UserName != "jsmith" {
		t.Fatalf("unexpected login result: %+v", result)
	}
	if !result.ExpiresAt.After(time.Now()) {
		t.Fatal("token already expired at issuance")
	}

	claims, err := service.ExtractClaims(result.Token)
	if err != nil {
		t.Fatalf("extract claims: %v", err)
	}
	if claims.UserID != operator.ID || claims.Role != models.RoleAdmin || claims.UserName != "jsmith" {
		t.Fatalf("claims do not round-trip: %+v", claims)
	}
	if claims.Issuer != cfg.JWTIssuer {
		t.Fatalf("expected issuer %q, got %q", cfg.JWTIssuer, claims.Issuer)
	}
}

// Unknown username and wrong password must be indistinguishable to the caller.
func TestLoginFailureIsUniform(t *testing.T) {
	db, cfg := newTestDB(t)
	service := NewJWTService(cfg, db)
	seedOperator(t, db, "jsmith", "correct-horse", models.RoleOperator)

	_, wrongPassword := service.Login("jsmith", "wrong")
	_, unknownUser := service.Login("nobody", "wrong")

	if code.CodeOf(wrongPassword) != code.ErrOperatorUnauthorized {
		t.Fatalf("wrong password: expected unauthorized, got %v", wrongPassword)
	}
	if code.CodeOf(unknownUser) != code.ErrOperatorUnauthorized {
		t.Fatalf("unknown user: expected unauthorized, got %v", unknownUser)
	}
	if wrongPassword.Error() != unknownUser.Error() {
		t.Fatalf("failure messages differ: %q vs %q", wrongPassword.Error(), unknownUser.Error())
	}
}

func TestLoginRefusesDeletedOperator(t *testing.T) {
	db, cfg := newTestDB(t)
	service := NewJWTService(cfg, db)
	operator := seedOperator(t, db, "jsmith", "correct-horse", models.RoleOperator)

	now := time.Now()
	err := db.Model(&models.Operator{}).Where("id = ?", operator.ID).
		Updates(map[string]interface{}{"is_deleted": true, "deleted_at": now, "deleted_by_id": operator.ID}).Error
	if err != nil {
		t.Fatalf("mark deleted: %v", err)
	}

	if _, err := service.Login("jsmith", "correct-horse"); code.CodeOf(err) != code.ErrOperatorUnauthorized {
		t.Fatalf("expected unauthorized for deleted operator, got %v", err)
	}
}

func TestValidateTokenRejectsTampering(t *testing.T) {
	db, cfg := newTestDB(t)
	service := NewJWTService(cfg, db)

	token, err := service.GenerateToken(1, models.RoleOperator, "jsmith")
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	if _, err := service.ExtractClaims(token + "x"); err == nil {
		t.Fatal("tampered token accepted")
	}

	otherCfg := *cfg
	otherCfg.JWTSecretKey = "different-secret"
	other := NewJWTService(&otherCfg, db)
	if _, err := other.ExtractClaims(token); err == nil {
		t.Fatal("token signed with another secret accepted")
	}
}
