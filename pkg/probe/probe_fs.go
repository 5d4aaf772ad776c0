package probe

import (
	"context"
	"os"
)

type filesystemProbe struct {
	path string
}

func (f *filesystemProbe) Exec(_ context.Context) error {
	_, err := os.ReadDir(f.path)
	return err
}
