package domain_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	adaptermocks "github.com/rezi-labs/cup/internal/adapter/mocks"
	"github.com/rezi-labs/cup/internal/controller"
	controllermocks "github.com/rezi-labs/cup/internal/controller/mocks"
	"github.com/rezi-labs/cup/internal/domain"
	domainmocks "github.com/rezi-labs/cup/internal/domain/mocks"
	m "github.com/rezi-labs/cup/internal/model"
)

func resultChannel(results ...m.BatchResult) <-chan m.BatchResult {
	ch := make(chan m.BatchResult, len(results))
	for _, result := range results {
		ch <- result
	}

	close(ch)

	return ch
}

func TestWorkflow_Update_Success(t *testing.T) {
	// Arrange
	mockFSAdapter := adaptermocks.NewMockSourceFSAdapter(t)
	mockReportStore := adaptermocks.NewMockReportStore(t)
	mockUI := controllermocks.NewMockUI(t)
	mockOrchestrator := domainmocks.NewMockOrchestrator(t)
	parser := domain.NewAnnotationParser(domain.AnnotationConfig{})

	files := []m.SourceFile{
		{Path: "a.toml", Content: "x = 1.0.0 # [cup] acme/a\ny = 1.0.0 # [cup] acme/b\n"},
		{Path: "b.txt", Content: "plain text\n"},
	}

	batches := []m.FileBatch{{Path: "a.toml"}}
	result := m.BatchResult{Path: "a.toml", Mutations: 2, Written: true}

	mockFSAdapter.EXPECT().CollectFiles(mock.Anything, m.Path("./project")).Return(files, nil).Once()
	mockOrchestrator.EXPECT().Partition(mock.MatchedBy(func(targets []m.Target) bool {
		return len(targets) == 2
	})).Return(batches).Once()
	mockUI.EXPECT().Start(mock.Anything).Return(context.Background(), nil).Once()
	mockUI.EXPECT().DisplayScan(mock.Anything, controller.ScanInfo{
		Files:   2,
		Targets: 2,
		Batches: 1,
		Threads: 3,
	}).Return().Once()
	mockOrchestrator.EXPECT().Run(mock.Anything, mock.Anything, 3).Return(resultChannel(result)).Once()
	mockUI.EXPECT().DisplayBatch(mock.Anything, result).Return().Once()
	mockUI.EXPECT().DisplaySummary(mock.Anything, []m.BatchResult{result}).Return().Once()
	mockUI.EXPECT().Close(mock.Anything).Return().Once()

	wf := domain.NewWorkflow(mockFSAdapter, mockReportStore, mockUI, parser, mockOrchestrator)

	// Act
	err := wf.Update(context.Background(), domain.UpdateArgs{Root: "./project", Threads: 3})

	// Assert
	require.NoError(t, err)
	mockReportStore.AssertNotCalled(t, "SaveReport", mock.Anything, mock.Anything, mock.Anything)
}

func TestWorkflow_Update_SavesReport(t *testing.T) {
	mockFSAdapter := adaptermocks.NewMockSourceFSAdapter(t)
	mockReportStore := adaptermocks.NewMockReportStore(t)
	mockUI := controllermocks.NewMockUI(t)
	mockOrchestrator := domainmocks.NewMockOrchestrator(t)
	parser := domain.NewAnnotationParser(domain.AnnotationConfig{})

	failed := m.BatchResult{Path: "a.toml", Err: errors.New("read failed")}

	mockFSAdapter.EXPECT().CollectFiles(mock.Anything, m.Path(".")).Return(nil, nil).Once()
	mockOrchestrator.EXPECT().Partition(mock.Anything).Return(nil).Once()
	mockUI.EXPECT().Start(mock.Anything).Return(context.Background(), nil).Once()
	mockUI.EXPECT().DisplayScan(mock.Anything, mock.MatchedBy(func(info controller.ScanInfo) bool {
		return info.DryRun && info.Threads > 0
	})).Return().Once()
	mockOrchestrator.EXPECT().Run(mock.Anything, mock.Anything, mock.Anything).Return(resultChannel(failed)).Once()
	mockUI.EXPECT().DisplayBatch(mock.Anything, failed).Return().Once()
	mockUI.EXPECT().DisplaySummary(mock.Anything, []m.BatchResult{failed}).Return().Once()
	mockUI.EXPECT().Close(mock.Anything).Return().Once()
	mockReportStore.EXPECT().SaveReport(mock.Anything, m.Path("out/report.yaml"), []m.BatchResult{failed}).Return(nil).Once()

	wf := domain.NewWorkflow(mockFSAdapter, mockReportStore, mockUI, parser, mockOrchestrator)

	err := wf.Update(context.Background(), domain.UpdateArgs{
		Root:   ".",
		DryRun: true,
		Report: "out/report.yaml",
	})

	assert.NoError(t, err)
}

func TestWorkflow_Update_CollectError(t *testing.T) {
	mockFSAdapter := adaptermocks.NewMockSourceFSAdapter(t)
	mockReportStore := adaptermocks.NewMockReportStore(t)
	mockUI := controllermocks.NewMockUI(t)
	mockOrchestrator := domainmocks.NewMockOrchestrator(t)
	parser := domain.NewAnnotationParser(domain.AnnotationConfig{})

	walkErr := errors.New("no such directory")
	mockFSAdapter.EXPECT().CollectFiles(mock.Anything, m.Path("missing")).Return(nil, walkErr).Once()

	wf := domain.NewWorkflow(mockFSAdapter, mockReportStore, mockUI, parser, mockOrchestrator)

	err := wf.Update(context.Background(), domain.UpdateArgs{Root: "missing", Threads: 1})

	assert.ErrorIs(t, err, walkErr)
	mockUI.AssertNotCalled(t, "Start", mock.Anything)
}

func TestWorkflow_Update_StartError(t *testing.T) {
	mockFSAdapter := adaptermocks.NewMockSourceFSAdapter(t)
	mockReportStore := adaptermocks.NewMockReportStore(t)
	mockUI := controllermocks.NewMockUI(t)
	mockOrchestrator := domainmocks.NewMockOrchestrator(t)
	parser := domain.NewAnnotationParser(domain.AnnotationConfig{})

	startErr := errors.New("start failed")

	mockFSAdapter.EXPECT().CollectFiles(mock.Anything, m.Path(".")).Return(nil, nil).Once()
	mockOrchestrator.EXPECT().Partition(mock.Anything).Return(nil).Once()
	mockUI.EXPECT().Start(mock.Anything).Return(nil, startErr).Once()

	wf := domain.NewWorkflow(mockFSAdapter, mockReportStore, mockUI, parser, mockOrchestrator)

	err := wf.Update(context.Background(), domain.UpdateArgs{Root: ".", Threads: 1})

	assert.ErrorIs(t, err, startErr)
	mockOrchestrator.AssertNotCalled(t, "Run", mock.Anything, mock.Anything, mock.Anything)
}

func TestWorkflow_Update_ReportError(t *testing.T) {
	mockFSAdapter := adaptermocks.NewMockSourceFSAdapter(t)
	mockReportStore := adaptermocks.NewMockReportStore(t)
	mockUI := controllermocks.NewMockUI(t)
	mockOrchestrator := domainmocks.NewMockOrchestrator(t)
	parser := domain.NewAnnotationParser(domain.AnnotationConfig{})

	saveErr := errors.New("read-only filesystem")

	mockFSAdapter.EXPECT().CollectFiles(mock.Anything, mock.Anything).Return(nil, nil).Once()
	mockOrchestrator.EXPECT().Partition(mock.Anything).Return(nil).Once()
	mockUI.EXPECT().Start(mock.Anything).Return(context.Background(), nil).Once()
	mockUI.EXPECT().DisplayScan(mock.Anything, mock.Anything).Return().Once()
	mockOrchestrator.EXPECT().Run(mock.Anything, mock.Anything, 1).Return(resultChannel()).Once()
	mockUI.EXPECT().DisplaySummary(mock.Anything, []m.BatchResult{}).Return().Once()
	mockUI.EXPECT().Close(mock.Anything).Return().Once()
	mockReportStore.EXPECT().SaveReport(mock.Anything, m.Path("report.yaml"), []m.BatchResult{}).Return(saveErr).Once()

	wf := domain.NewWorkflow(mockFSAdapter, mockReportStore, mockUI, parser, mockOrchestrator)

	err := wf.Update(context.Background(), domain.UpdateArgs{Root: ".", Threads: 1, Report: "report.yaml"})

	assert.ErrorIs(t, err, saveErr)
}

func TestWorkflow_Update_InterruptedFromUI(t *testing.T) {
	mockFSAdapter := adaptermocks.NewMockSourceFSAdapter(t)
	mockReportStore := adaptermocks.NewMockReportStore(t)
	mockUI := controllermocks.NewMockUI(t)
	mockOrchestrator := domainmocks.NewMockOrchestrator(t)
	parser := domain.NewAnnotationParser(domain.AnnotationConfig{})

	runCtx, cancel := context.WithCancel(context.Background())

	mockFSAdapter.EXPECT().CollectFiles(mock.Anything, mock.Anything).Return(nil, nil).Once()
	mockOrchestrator.EXPECT().Partition(mock.Anything).Return(nil).Once()
	mockUI.EXPECT().Start(mock.Anything).Return(runCtx, nil).Once()
	mockUI.EXPECT().DisplayScan(runCtx, mock.Anything).Return().Once()
	mockOrchestrator.EXPECT().
		Run(runCtx, mock.Anything, 1).
		RunAndReturn(func(context.Context, []m.Target, int) <-chan m.BatchResult {
			cancel()
			return resultChannel()
		}).
		Once()
	mockUI.EXPECT().DisplaySummary(runCtx, []m.BatchResult{}).Return().Once()
	mockUI.EXPECT().Close(runCtx).Return().Once()

	wf := domain.NewWorkflow(mockFSAdapter, mockReportStore, mockUI, parser, mockOrchestrator)

	err := wf.Update(context.Background(), domain.UpdateArgs{Root: ".", Threads: 1, Report: "report.yaml"})

	require.ErrorIs(t, err, context.Canceled)
	mockReportStore.AssertNotCalled(t, "SaveReport", mock.Anything, mock.Anything, mock.Anything)
}
