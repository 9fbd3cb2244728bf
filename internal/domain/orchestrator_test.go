package domain

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rezi-labs/cup/internal/adapter"
	adaptermocks "github.com/rezi-labs/cup/internal/adapter/mocks"
	m "github.com/rezi-labs/cup/internal/model"
)

// staticResolver answers every identity from a fixed table.
func staticResolver(tags map[string]string, failures map[string]error) adapter.Resolver {
	return adapter.ResolverFunc(func(_ context.Context, identity m.RemoteIdentity) (string, error) {
		if err, ok := failures[identity.Identifier]; ok {
			return "", err
		}

		if tag, ok := tags[identity.Identifier]; ok {
			return tag, nil
		}

		return "", adapter.ErrNoTags
	})
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()

	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func readFile(t *testing.T, path string) string {
	t.Helper()

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	return string(data)
}

func scanFile(t *testing.T, path string) m.FileBatch {
	t.Helper()

	parser := NewAnnotationParser(AnnotationConfig{})
	targets := parser.Scan([]m.SourceFile{{Path: m.Path(path), Content: readFile(t, path)}})
	require.NotEmpty(t, targets)

	return m.FileBatch{Path: m.Path(path), Targets: targets}
}

func TestOrchestrator_ProcessBatch_BareAssignment(t *testing.T) {
	path := filepath.Join(t.TempDir(), "versions.txt")
	writeFile(t, path, "app_version = 1.4.0 // [cup] GitHub acme/widget\n")

	orch := NewOrchestrator(adapter.NewLocalSourceFSAdapter(), staticResolver(map[string]string{"acme/widget": "v1.5.2"}, nil))

	result := orch.ProcessBatch(context.Background(), scanFile(t, path))

	require.NoError(t, result.Err)
	assert.Equal(t, 1, result.Mutations)
	assert.True(t, result.Written)
	require.Len(t, result.Outcomes, 1)
	assert.Equal(t, "1.5.2", result.Outcomes[0].Version)
	assert.True(t, result.Outcomes[0].Changed)
	assert.Equal(t, "app_version = 1.5.2 // [cup] GitHub acme/widget\n", readFile(t, path))
}

func TestOrchestrator_ProcessBatch_QuotedKeyValue(t *testing.T) {
	path := filepath.Join(t.TempDir(), "package.json")
	writeFile(t, path, "{\n  \"lib\": \"2.0.0\" // [cup] acme/lib\n}\n")

	orch := NewOrchestrator(adapter.NewLocalSourceFSAdapter(), staticResolver(map[string]string{"acme/lib": "2.1.0"}, nil))

	result := orch.ProcessBatch(context.Background(), scanFile(t, path))

	assert.Equal(t, 1, result.Mutations)
	assert.Equal(t, "{\n  \"lib\": \"2.1.0\" // [cup] acme/lib\n}\n", readFile(t, path))
}

func TestOrchestrator_ProcessBatch_FailureIsolation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deps.conf")
	original := "a = 1.0.0 // [cup] acme/a\n\"b\": \"1.0.0\" // [cup] acme/b\nuntouched = 1.0.0\n"
	writeFile(t, path, original)

	resolveErr := errors.New("rate limited")
	orch := NewOrchestrator(
		adapter.NewLocalSourceFSAdapter(),
		staticResolver(map[string]string{"acme/a": "2.0.0"}, map[string]error{"acme/b": resolveErr}),
	)

	result := orch.ProcessBatch(context.Background(), scanFile(t, path))

	require.NoError(t, result.Err)
	assert.Equal(t, 1, result.Mutations)
	assert.Equal(t, 1, result.Failed())
	assert.True(t, result.Written)

	require.Len(t, result.Outcomes, 2)
	assert.True(t, result.Outcomes[0].OK())
	assert.ErrorIs(t, result.Outcomes[1].Err, resolveErr)
	assert.Contains(t, result.Outcomes[1].Err.Error(), "GitHub:acme/b")

	assert.Equal(t, "a = 2.0.0 // [cup] acme/a\n\"b\": \"1.0.0\" // [cup] acme/b\nuntouched = 1.0.0\n", readFile(t, path))
}

func TestOrchestrator_ProcessBatch_RowOutOfBounds(t *testing.T) {
	path := filepath.Join(t.TempDir(), "short.txt")
	original := "v = 1.0.0 # [cup] acme/a\n"
	writeFile(t, path, original)

	batch := m.FileBatch{
		Path: m.Path(path),
		Targets: []m.Target{
			m.NewTarget(m.Path(path), 7, m.RemoteIdentity{Type: m.RemoteGitHub, Identifier: "acme/a"}),
		},
	}

	orch := NewOrchestrator(adapter.NewLocalSourceFSAdapter(), staticResolver(map[string]string{"acme/a": "2.0.0"}, nil))

	result := orch.ProcessBatch(context.Background(), batch)

	require.Len(t, result.Outcomes, 1)
	assert.ErrorIs(t, result.Outcomes[0].Err, ErrRowOutOfBounds)
	assert.Equal(t, 0, result.Mutations)
	assert.False(t, result.Written)
	assert.Equal(t, original, readFile(t, path))
}

func TestOrchestrator_ProcessBatch_NoPatternMatched(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	original := "see upstream // [cup] acme/a\n"
	writeFile(t, path, original)

	orch := NewOrchestrator(adapter.NewLocalSourceFSAdapter(), staticResolver(map[string]string{"acme/a": "2.0.0"}, nil))

	result := orch.ProcessBatch(context.Background(), scanFile(t, path))

	require.Len(t, result.Outcomes, 1)
	assert.ErrorIs(t, result.Outcomes[0].Err, ErrNoPatternMatched)
	assert.False(t, result.Written)
	assert.Equal(t, original, readFile(t, path))
}

func TestOrchestrator_ProcessBatch_UpToDateDoesNotWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "current.txt")
	writeFile(t, path, "v = 2.0.0 # [cup] acme/a\n")

	info, err := os.Stat(path)
	require.NoError(t, err)

	fsAdapter := adaptermocks.NewMockSourceFSAdapter(t)
	fsAdapter.EXPECT().FileInfo(mock.Anything, m.Path(path)).Return(info, nil).Once()
	fsAdapter.EXPECT().ReadFile(mock.Anything, m.Path(path)).Return([]byte("v = 2.0.0 # [cup] acme/a\n"), nil).Once()

	resolver := adaptermocks.NewMockResolver(t)
	resolver.EXPECT().
		Resolve(mock.Anything, m.RemoteIdentity{Type: m.RemoteGitHub, Identifier: "acme/a"}).
		Return("v2.0.0", nil).
		Once()

	orch := NewOrchestrator(fsAdapter, resolver)

	result := orch.ProcessBatch(context.Background(), scanFile(t, path))

	require.Len(t, result.Outcomes, 1)
	assert.True(t, result.Outcomes[0].OK())
	assert.False(t, result.Outcomes[0].Changed)
	assert.Equal(t, 1, result.Mutations)
	assert.False(t, result.Written)
	assert.Empty(t, result.Diff)
}

func TestOrchestrator_ProcessBatch_CountsUnchangedRewrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mixed.txt")
	writeFile(t, path, "a = 1.0.0 # [cup] acme/a\nb = 2.0.0 # [cup] acme/b\n")

	orch := NewOrchestrator(
		adapter.NewLocalSourceFSAdapter(),
		staticResolver(map[string]string{"acme/a": "1.1.0", "acme/b": "v2.0.0"}, nil),
	)

	result := orch.ProcessBatch(context.Background(), scanFile(t, path))

	require.Len(t, result.Outcomes, 2)
	assert.True(t, result.Outcomes[0].Changed)
	assert.False(t, result.Outcomes[1].Changed)
	assert.Equal(t, 2, result.Mutations)
	assert.True(t, result.Written)
	assert.Equal(t, "a = 1.1.0 # [cup] acme/a\nb = 2.0.0 # [cup] acme/b\n", readFile(t, path))
}

func TestOrchestrator_ProcessBatch_CancelledDuringResolveDoesNotWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "versions.txt")
	original := "v = 1.0.0 # [cup] acme/a\n"
	writeFile(t, path, original)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	resolver := adapter.ResolverFunc(func(context.Context, m.RemoteIdentity) (string, error) {
		cancel()
		return "2.0.0", nil
	})

	result := NewOrchestrator(adapter.NewLocalSourceFSAdapter(), resolver).ProcessBatch(ctx, scanFile(t, path))

	require.ErrorIs(t, result.Err, context.Canceled)
	assert.False(t, result.Written)
	assert.Equal(t, original, readFile(t, path))
}

func TestOrchestrator_ProcessBatch_CancelledBeforeStart(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	batch := m.FileBatch{
		Path:    "never-read.txt",
		Targets: []m.Target{m.NewTarget("never-read.txt", 0, m.RemoteIdentity{Type: m.RemoteGitHub, Identifier: "acme/a"})},
	}

	result := NewOrchestrator(adaptermocks.NewMockSourceFSAdapter(t), adaptermocks.NewMockResolver(t)).ProcessBatch(ctx, batch)

	require.ErrorIs(t, result.Err, context.Canceled)
	require.Len(t, result.Outcomes, 1)
	assert.ErrorIs(t, result.Outcomes[0].Err, context.Canceled)
}

func TestOrchestrator_ProcessBatch_DryRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "versions.txt")
	original := "name = demo\napp_version = 1.4.0 // [cup] acme/widget\n"
	writeFile(t, path, original)

	orch := NewOrchestrator(
		adapter.NewLocalSourceFSAdapter(),
		staticResolver(map[string]string{"acme/widget": "v1.5.2"}, nil),
		WithDryRun(true),
	)

	result := orch.ProcessBatch(context.Background(), scanFile(t, path))

	assert.Equal(t, 1, result.Mutations)
	assert.False(t, result.Written)
	assert.Contains(t, result.Diff, "-app_version = 1.4.0 // [cup] acme/widget")
	assert.Contains(t, result.Diff, "+app_version = 1.5.2 // [cup] acme/widget")
	assert.Equal(t, original, readFile(t, path))
}

func TestOrchestrator_ProcessBatch_ReadFailureFailsOnlyBatch(t *testing.T) {
	readErr := errors.New("permission denied")

	fsAdapter := adaptermocks.NewMockSourceFSAdapter(t)
	fsAdapter.EXPECT().FileInfo(mock.Anything, m.Path("locked.txt")).Return(nil, readErr).Once()

	resolver := adaptermocks.NewMockResolver(t)

	batch := m.FileBatch{
		Path: "locked.txt",
		Targets: []m.Target{
			m.NewTarget("locked.txt", 0, m.RemoteIdentity{Type: m.RemoteGitHub, Identifier: "acme/a"}),
			m.NewTarget("locked.txt", 3, m.RemoteIdentity{Type: m.RemoteGitHub, Identifier: "acme/b"}),
		},
	}

	result := NewOrchestrator(fsAdapter, resolver).ProcessBatch(context.Background(), batch)

	require.ErrorIs(t, result.Err, readErr)
	require.Len(t, result.Outcomes, 2)

	for _, outcome := range result.Outcomes {
		assert.ErrorIs(t, outcome.Err, readErr)
	}

	assert.False(t, result.Written)
	resolver.AssertNotCalled(t, "Resolve", mock.Anything, mock.Anything)
}

func TestOrchestrator_ProcessBatch_WriteFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "versions.txt")
	content := "v = 1.0.0 # [cup] acme/a\n"
	writeFile(t, path, content)

	info, err := os.Stat(path)
	require.NoError(t, err)

	writeErr := errors.New("disk full")

	fsAdapter := adaptermocks.NewMockSourceFSAdapter(t)
	fsAdapter.EXPECT().FileInfo(mock.Anything, m.Path(path)).Return(info, nil).Once()
	fsAdapter.EXPECT().ReadFile(mock.Anything, m.Path(path)).Return([]byte(content), nil).Once()
	fsAdapter.EXPECT().
		WriteFile(mock.Anything, m.Path(path), []byte("v = 2.0.0 # [cup] acme/a\n"), info.Mode().Perm()).
		Return(writeErr).
		Once()

	orch := NewOrchestrator(fsAdapter, staticResolver(map[string]string{"acme/a": "2.0.0"}, nil))

	result := orch.ProcessBatch(context.Background(), scanFile(t, path))

	require.ErrorIs(t, result.Err, writeErr)
	assert.Equal(t, 1, result.Mutations)
	assert.False(t, result.Written)
}

func TestOrchestrator_ProcessBatch_PreservesMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.sh")
	writeFile(t, path, "VERSION=1.0.0 # [cup] acme/a\n")
	require.NoError(t, os.Chmod(path, 0o750))

	orch := NewOrchestrator(adapter.NewLocalSourceFSAdapter(), staticResolver(map[string]string{"acme/a": "1.1.0"}, nil))

	result := orch.ProcessBatch(context.Background(), scanFile(t, path))
	require.True(t, result.Written)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o750), info.Mode().Perm())
	assert.Equal(t, "VERSION=1.1.0 # [cup] acme/a\n", readFile(t, path))
}

func TestOrchestrator_Partition(t *testing.T) {
	remote := m.RemoteIdentity{Type: m.RemoteGitHub, Identifier: "acme/a"}
	targets := []m.Target{
		m.NewTarget("b.txt", 0, remote),
		m.NewTarget("a.txt", 2, remote),
		m.NewTarget("b.txt", 5, remote),
	}

	batches := NewOrchestrator(nil, nil).Partition(targets)

	require.Len(t, batches, 2)
	assert.Equal(t, m.Path("b.txt"), batches[0].Path)
	assert.Equal(t, []int{0, 5}, []int{batches[0].Targets[0].Row, batches[0].Targets[1].Row})
	assert.Equal(t, m.Path("a.txt"), batches[1].Path)
	assert.Len(t, batches[1].Targets, 1)
}

func TestOrchestrator_Run(t *testing.T) {
	dir := t.TempDir()
	parser := NewAnnotationParser(AnnotationConfig{})

	var files []m.SourceFile

	for _, name := range []string{"a.txt", "b.txt", "c.txt"} {
		path := filepath.Join(dir, name)
		content := "v = 1.0.0 # [cup] acme/a\nw = 1.0.0 # [cup] acme/missing\n"
		writeFile(t, path, content)
		files = append(files, m.SourceFile{Path: m.Path(path), Content: content})
	}

	orch := NewOrchestrator(adapter.NewLocalSourceFSAdapter(), staticResolver(map[string]string{"acme/a": "v3.0.0"}, nil))

	var paths []string

	for result := range orch.Run(context.Background(), parser.Scan(files), 2) {
		assert.Equal(t, 1, result.Mutations)
		assert.Equal(t, 1, result.Failed())
		paths = append(paths, string(result.Path))
	}

	sort.Strings(paths)
	assert.Equal(t, []string{
		filepath.Join(dir, "a.txt"),
		filepath.Join(dir, "b.txt"),
		filepath.Join(dir, "c.txt"),
	}, paths)

	for _, file := range files {
		assert.Equal(t, "v = 3.0.0 # [cup] acme/a\nw = 1.0.0 # [cup] acme/missing\n", readFile(t, string(file.Path)))
	}
}

func TestOrchestrator_RunNoTargets(t *testing.T) {
	results := NewOrchestrator(nil, nil).Run(context.Background(), nil, 4)

	_, open := <-results
	assert.False(t, open)
}
