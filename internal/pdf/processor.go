package pdf

import (
	"fmt"
	"image"
	"sort"
	"time"

	"github.com/inkbar/formscan/internal/common"
	"github.com/inkbar/formscan/internal/pipeline"
	"github.com/inkbar/formscan/internal/raster"
	"github.com/inkbar/formscan/internal/sheet"
)

// ProcessorConfig controls PDF batch-scan behavior.
type ProcessorConfig struct {
	// AllowPasswords enables decrypting password-protected PDFs before scanning.
	AllowPasswords bool
	// AllowPasswordPrompt lets the password handler prompt on stdin when a
	// default credential fails.
	AllowPasswordPrompt bool
	Scan                pipeline.Config
}

// DefaultProcessorConfig returns the default PDF processor configuration.
func DefaultProcessorConfig() *ProcessorConfig {
	return &ProcessorConfig{
		AllowPasswords:      true,
		AllowPasswordPrompt: false,
		Scan:                pipeline.DefaultConfig(),
	}
}

// Processor extracts each page of a scanned-form PDF as an image and runs
// the scan pipeline against it, one page at a time.
type Processor struct {
	layout          sheet.Layout
	config          *ProcessorConfig
	passwordHandler *PasswordHandler
	tempFiles       []string
}

// NewProcessor creates a PDF processor that decodes every page against layout.
func NewProcessor(layout sheet.Layout) *Processor {
	return NewProcessorWithConfig(layout, DefaultProcessorConfig())
}

// NewProcessorWithConfig creates a PDF processor with custom configuration.
func NewProcessorWithConfig(layout sheet.Layout, config *ProcessorConfig) *Processor {
	if config == nil {
		config = DefaultProcessorConfig()
	}
	return &Processor{
		layout:          layout,
		config:          config,
		passwordHandler: NewPasswordHandler(config.AllowPasswordPrompt),
	}
}

// ProcessFile scans every page of a PDF and returns one result per page.
func (p *Processor) ProcessFile(filename, pageRange string) (*DocumentResult, error) {
	return p.ProcessFileWithCredentials(filename, pageRange, nil)
}

// ProcessFileWithCredentials scans a PDF that may require a password to open.
func (p *Processor) ProcessFileWithCredentials(filename, pageRange string,
	creds *PasswordCredentials,
) (*DocumentResult, error) {
	start := time.Now()

	workingFilename, err := p.handlePasswordProtection(filename, creds)
	if err != nil {
		return nil, err
	}
	defer p.cleanupTempFiles()

	extractStart := time.Now()
	pageImages, err := ExtractImages(workingFilename, pageRange)
	if err != nil {
		return nil, fmt.Errorf("pdf: extracting page images from %s: %w", filename, err)
	}
	extractTime := time.Since(extractStart)

	pages := p.scanAllPages(pageImages)

	return &DocumentResult{
		Filename:   filename,
		TotalPages: len(pages),
		Pages:      pages,
		Processing: ProcessingInfo{
			ExtractionTimeMs: extractTime.Milliseconds(),
			TotalTimeMs:      time.Since(start).Milliseconds(),
		},
	}, nil
}

// scanAllPages scans every extracted page sequentially, in ascending page
// order, per the pipeline's single-threaded decoding contract.
func (p *Processor) scanAllPages(pageImages map[int][]image.Image) []PageResult {
	pageNums := make([]int, 0, len(pageImages))
	for n := range pageImages {
		pageNums = append(pageNums, n)
	}
	sort.Ints(pageNums)

	pages := make([]PageResult, 0, len(pageNums))
	for _, n := range pageNums {
		for _, img := range pageImages[n] {
			pages = append(pages, p.scanPage(n, img))
		}
	}
	return pages
}

func (p *Processor) scanPage(pageNum int, img image.Image) PageResult {
	timer := common.NewNamedTimer(fmt.Sprintf("page-%d", pageNum))
	bounds := img.Bounds()

	result := PageResult{PageNumber: pageNum, Width: bounds.Dx(), Height: bounds.Dy()}

	raw, err := raster.FromStdImage(img)
	if err != nil {
		timer.Stop()
		result.Err = err.Error()
		result.DecodeMs = timer.Duration().Milliseconds()
		return result
	}

	fields, err := pipeline.Scan(raw, p.layout, p.config.Scan)
	timer.Stop()
	result.DecodeMs = timer.Duration().Milliseconds()
	if err != nil {
		result.Err = err.Error()
		return result
	}
	result.Fields = fields
	return result
}

// handlePasswordProtection decrypts filename to a temp file if it is
// password-protected, tracking the temp file for later cleanup.
func (p *Processor) handlePasswordProtection(filename string, creds *PasswordCredentials) (string, error) {
	if !p.config.AllowPasswords {
		return filename, nil
	}

	encrypted, err := p.passwordHandler.IsEncrypted(filename)
	if err != nil {
		return "", fmt.Errorf("pdf: checking encryption of %s: %w", filename, err)
	}
	if !encrypted {
		return filename, nil
	}

	workingFilename, err := p.passwordHandler.DecryptPDF(filename, creds)
	if err != nil {
		return "", fmt.Errorf("pdf: decrypting %s: %w", filename, err)
	}
	if workingFilename != filename {
		p.tempFiles = append(p.tempFiles, workingFilename)
	}
	return workingFilename, nil
}

func (p *Processor) cleanupTempFiles() {
	for _, f := range p.tempFiles {
		_ = p.passwordHandler.CleanupTempFile(f)
	}
	p.tempFiles = p.tempFiles[:0]
}

// SetPasswordCredentials sets default credentials tried before any prompt.
func (p *Processor) SetPasswordCredentials(creds *PasswordCredentials) {
	p.passwordHandler.SetDefaultCredentials(creds)
}
