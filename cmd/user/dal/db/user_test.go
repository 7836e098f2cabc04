package db

import (
	"context"
	"strings"
	"testing"

	"TubeFuss.com/pkg/mock"
)

const userID = "0a1b2c3d-4e5f-4a6b-8c7d-9e0f1a2b3c4d"

func TestSetRefreshToken(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name     string
		expected string
		affected int64
		want     bool
		guard    bool
	}{
		{name: "rotation from the held token", expected: "old", affected: 1, want: true, guard: true},
		{name: "stale token loses", expected: "old", affected: 0, want: false, guard: true},
		{name: "first login writes unconditionally", expected: "", affected: 1, want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, rec, err := mock.NewSQLDB(false)
			if err != nil {
				t.Fatal(err)
			}
			rec.Affected = func(string) int64 { return tt.affected }
			ok, err := NewUserDao(db, 5).SetRefreshToken(ctx, userID, tt.expected, "new")
			if err != nil || ok != tt.want {
				t.Fatalf("SetRefreshToken = %v, %v, want %v", ok, err, tt.want)
			}
			sql, found := rec.Find("UPDATE `users` SET `refresh_token`='new'")
			if !found {
				t.Fatalf("no update in %v", rec.Statements())
			}
			if !strings.Contains(sql, "id = '"+userID+"'") {
				t.Errorf("update not scoped to the account: %s", sql)
			}
			if guarded := strings.Contains(sql, "refresh_token = 'old'"); guarded != tt.guard {
				t.Errorf("compare-and-swap guard = %v, want %v: %s", guarded, tt.guard, sql)
			}
		})
	}
}
