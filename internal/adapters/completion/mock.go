package completion

import (
	"context"
	"fmt"

	"github.com/sm-social/chatcore/internal/domain"
)

// Mock is a canned completion client for local development and tests.
// Reply overrides the default echo; Err makes every call fail.
type Mock struct {
	Reply string
	Err   error
}

func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) Complete(ctx context.Context, turns []domain.Turn) (string, error) {
	if m.Err != nil {
		return "", m.Err
	}
	if m.Reply != "" {
		return m.Reply, nil
	}

	last := ""
	for i := len(turns) - 1; i >= 0; i-- {
		if turns[i].Role == domain.RoleUser {
			last = turns[i].Content
			break
		}
	}
	return fmt.Sprintf("You said %q. I can help you find something happening around South Manchester.", last), nil
}
