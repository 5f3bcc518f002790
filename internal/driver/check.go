package driver

import (
	"context"
	"fmt"
	"math"
	"runtime"
	"strconv"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"refcheck/internal/ast"
	"refcheck/internal/binder"
	"refcheck/internal/buildpipeline"
	"refcheck/internal/diag"
	"refcheck/internal/lexer"
	"refcheck/internal/observ"
	"refcheck/internal/parser"
	"refcheck/internal/project"
	"refcheck/internal/sema"
	"refcheck/internal/source"
	"refcheck/internal/trace"
)

// Options содержит опции проверки.
type Options struct {
	// MaxDiagnostics ограничивает число диагностик на файл и в итоговом bag; 0 - без лимита.
	MaxDiagnostics   int
	Jobs             int
	IgnoreWarnings   bool
	WarningsAsErrors bool
	// DemotePriority > 0 turns error diagnostics with priority >= DemotePriority into warnings.
	DemotePriority int
	EnableTimings  bool
	// Cache may be nil.
	Cache         *DiskCache
	Progress      buildpipeline.ProgressSink
	PhaseObserver PhaseObserver
	// BaseDir is used for display paths; defaults to the target directory.
	BaseDir string
}

// FileResult is the outcome for one input file.
type FileResult struct {
	Path   string
	FileID source.FileID
	// Bag holds this file's diagnostics before run-level filters.
	Bag    *diag.Bag
	Links  []Link
	Cached bool
}

// Result is the outcome of a check run.
type Result struct {
	RunID   string
	FileSet *source.FileSet
	Files   []FileResult
	// Bag holds every diagnostic, file by file, after filters; the prelude comes first.
	Bag *diag.Bag
	// Model is nil when every file was served from the cache.
	Model   *binder.Result
	Timing  *observ.Report
	Timings buildpipeline.Timings
	Visited int
	Linked  int
}

// Links returns every refined link of the run, file by file.
func (r *Result) Links() []Link {
	var out []Link
	for _, f := range r.Files {
		out = append(out, f.Links...)
	}
	return out
}

// HasErrors reports whether an error-severity diagnostic survived the filters.
func (r *Result) HasErrors() bool {
	return r != nil && r.Bag != nil && r.Bag.HasErrors()
}

// Check runs the pipeline on a single file or on every *.cy file under a directory.
func Check(ctx context.Context, target string, opts Options) (*Result, error) {
	files, baseDir, err := resolveTarget(target)
	if err != nil {
		return nil, err
	}
	if opts.BaseDir == "" {
		opts.BaseDir = baseDir
	}
	return CheckFiles(ctx, files, opts)
}

// unit is the per-file working state of one run.
type unit struct {
	path    string
	id      source.FileID
	bag     *diag.Bag
	builder *ast.Builder
	astFile ast.FileID
	loadErr error
}

type checkRun struct {
	ctx     context.Context
	opts    Options
	tracer  trace.Tracer
	root    uint64
	fs      *source.FileSet
	prelude unit
	units   []unit
	display []string
	timer   *observ.Timer
	res     *Result
}

// CheckFiles runs the pipeline on the given files. Files are processed in the given order.
func CheckFiles(ctx context.Context, paths []string, opts Options) (*Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	run := &checkRun{
		ctx:    ctx,
		opts:   opts,
		tracer: trace.FromContext(ctx),
		res:    &Result{RunID: uuid.NewString()},
	}
	if opts.EnableTimings {
		run.timer = observ.NewTimer()
	}

	span := trace.Begin(run.tracer, trace.ScopeDriver, "check", trace.CurrentSpan(ctx).SpanID)
	span.WithExtra("run_id", run.res.RunID).WithExtra("files", strconv.Itoa(len(paths)))
	run.root = span.ID()
	defer span.End("")

	run.load(paths)

	if cached := run.fromCache(); !cached {
		if err := run.parse(); err != nil {
			return nil, err
		}
		model := run.bind()
		if err := run.refine(model); err != nil {
			return nil, err
		}
		run.store()
	}

	run.report()
	return run.res, nil
}

func (r *checkRun) begin(name string) (int, time.Time) {
	if r.opts.PhaseObserver != nil {
		r.opts.PhaseObserver(PhaseEvent{Name: name, Status: PhaseStart})
	}
	idx := -1
	if r.timer != nil {
		idx = r.timer.Begin(name)
	}
	return idx, time.Now()
}

func (r *checkRun) end(name string, idx int, started time.Time, note string) time.Duration {
	elapsed := time.Since(started)
	if r.timer != nil && idx >= 0 {
		r.timer.End(idx, note)
	}
	if r.opts.PhaseObserver != nil {
		r.opts.PhaseObserver(PhaseEvent{Name: name, Status: PhaseEnd, Elapsed: elapsed})
	}
	return elapsed
}

func (r *checkRun) jobs() int {
	jobs := r.opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	return max(1, min(jobs, len(r.units)+1))
}

// load регистрирует prelude и все файлы в FileSet до запуска горутин:
// дальше FileSet только читается.
func (r *checkRun) load(paths []string) {
	idx, started := r.begin(string(buildpipeline.StageLoad))
	fs := source.NewFileSetWithBase(r.opts.BaseDir)
	r.fs = fs
	r.res.FileSet = fs

	r.prelude = unit{
		path: binder.LanguagePath,
		id:   fs.Add(binder.LanguagePath, []byte(binder.LanguageSource), source.FileVirtual|source.FileBuiltin),
		bag:  diag.NewBag(r.opts.MaxDiagnostics),
	}
	r.units = make([]unit, len(paths))
	for i, path := range paths {
		u := unit{path: path, bag: diag.NewBag(r.opts.MaxDiagnostics)}
		id, err := fs.Load(path)
		if err != nil {
			// пустой виртуальный файл, чтобы диагностике было на что указывать
			id = fs.Add(path, nil, source.FileVirtual)
			u.loadErr = err
			u.bag.Add(diag.NewError(diag.IOLoadFileError, source.Span{File: id}, "failed to load file: "+err.Error()))
		}
		u.id = id
		r.units[i] = u
	}

	files := make([]string, len(paths))
	for i := range r.units {
		files[i] = r.fs.Get(r.units[i].id).Path
	}
	r.display = buildpipeline.DisplayFiles(files, r.opts.BaseDir)
	buildpipeline.EmitQueued(r.opts.Progress, r.display)
	elapsed := r.end(string(buildpipeline.StageLoad), idx, started, "files="+strconv.Itoa(len(paths)))
	r.res.Timings.Set(buildpipeline.StageLoad, elapsed)
}

func (r *checkRun) displayName(u *unit) string {
	return buildpipeline.DisplayFiles([]string{r.fs.Get(u.id).Path}, r.opts.BaseDir)[0]
}

func parseUnit(fs *source.FileSet, u *unit) {
	// восстановление парсера может повторить ошибку лексера на том же токене
	rep := diag.NewDedupReporter(diag.BagReporter{Bag: u.bag})
	u.builder = ast.NewBuilder(ast.Hints{})
	lx := lexer.New(fs.Get(u.id), lexer.Options{Reporter: rep})
	u.astFile = parser.ParseFile(lx, u.builder, parser.Options{Reporter: rep}).File
}

// parse разбирает prelude и файлы параллельно; у каждого файла свой builder и bag.
func (r *checkRun) parse() error {
	idx, started := r.begin(string(buildpipeline.StageParse))
	pass := trace.Begin(r.tracer, trace.ScopePass, "parse", r.root)
	defer pass.End("")
	buildpipeline.EmitStage(r.opts.Progress, nil, buildpipeline.StageParse, buildpipeline.StatusWorking, nil, 0)

	parseUnit(r.fs, &r.prelude)

	g, gctx := errgroup.WithContext(r.ctx)
	g.SetLimit(r.jobs())
	for i := range r.units {
		u := &r.units[i]
		g.Go(func() error {
			// Проверка отмены
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			name := r.displayName(u)
			buildpipeline.EmitFile(r.opts.Progress, name, buildpipeline.StageParse, buildpipeline.StatusWorking, nil, 0)
			fileSpan := trace.Begin(r.tracer, trace.ScopeModule, "file:"+name, pass.ID())
			t0 := time.Now()
			if u.loadErr == nil {
				parseUnit(r.fs, u)
			}
			fileSpan.WithExtra("diags", strconv.Itoa(u.bag.Len())).End("")
			status := buildpipeline.StatusDone
			if u.loadErr != nil {
				status = buildpipeline.StatusError
			}
			buildpipeline.EmitFile(r.opts.Progress, name, buildpipeline.StageParse, status, u.loadErr, time.Since(t0))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	elapsed := r.end(string(buildpipeline.StageParse), idx, started, "")
	r.res.Timings.Set(buildpipeline.StageParse, elapsed)
	return nil
}

// bind строит общую модель; диагностики раскладываются по файлам.
func (r *checkRun) bind() *binder.Result {
	idx, started := r.begin(string(buildpipeline.StageBind))
	pass := trace.Begin(r.tracer, trace.ScopePass, "bind", r.root)
	buildpipeline.EmitStage(r.opts.Progress, nil, buildpipeline.StageBind, buildpipeline.StatusWorking, nil, 0)

	router := fileRouter{
		bags:     map[source.FileID]*diag.Bag{r.prelude.id: r.prelude.bag},
		fallback: r.prelude.bag,
	}
	units := []binder.Unit{{AST: r.prelude.builder, File: r.prelude.astFile, Builtin: true}}
	for i := range r.units {
		u := &r.units[i]
		router.bags[u.id] = u.bag
		if u.builder == nil {
			// файл не загрузился: пустой builder, чтобы индексы unit'ов совпадали
			u.builder = ast.NewBuilder(ast.Hints{})
			u.astFile = u.builder.NewFile(source.Span{File: u.id})
		}
		units = append(units, binder.Unit{AST: u.builder, File: u.astFile})
	}
	model := binder.Bind(units, binder.Options{Reporter: router})
	r.res.Model = model

	pass.WithExtra("decls", strconv.Itoa(model.Table.Len())).End("")
	elapsed := r.end(string(buildpipeline.StageBind), idx, started, "decls="+strconv.Itoa(model.Table.Len()))
	r.res.Timings.Set(buildpipeline.StageBind, elapsed)
	return model
}

// refine проверяет файлы параллельно: каждый файл владеет своими объявлениями,
// поэтому ссылки refined пишутся без гонок.
func (r *checkRun) refine(model *binder.Result) error {
	idx, started := r.begin(string(buildpipeline.StageRefine))
	pass := trace.Begin(r.tracer, trace.ScopePass, "refine", r.root)
	defer pass.End("")
	buildpipeline.EmitStage(r.opts.Progress, nil, buildpipeline.StageRefine, buildpipeline.StatusWorking, nil, 0)

	all := make([]*unit, 0, len(r.units)+1)
	all = append(all, &r.prelude)
	for i := range r.units {
		all = append(all, &r.units[i])
	}
	results := make([]sema.Result, len(all))
	links := make([][]Link, len(all))

	g, gctx := errgroup.WithContext(r.ctx)
	g.SetLimit(r.jobs())
	for i, u := range all {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			name := u.path
			if i > 0 {
				name = r.displayName(u)
				buildpipeline.EmitFile(r.opts.Progress, name, buildpipeline.StageRefine, buildpipeline.StatusWorking, nil, 0)
			}
			fileSpan := trace.Begin(r.tracer, trace.ScopeModule, "file:"+name, pass.ID())
			t0 := time.Now()
			results[i] = sema.CheckRefinement(model.UnitDecls[i], sema.Options{
				Reporter:   diag.BagReporter{Bag: u.bag},
				Table:      model.Table,
				Types:      model.Types,
				Hierarchy:  model.Hierarchy,
				Tracer:     r.tracer,
				ParentSpan: fileSpan.ID(),
			})
			links[i] = collectLinks(model.Table, model.UnitDecls[i])
			fileSpan.WithExtra("diags", strconv.Itoa(u.bag.Len())).End("")
			if i > 0 {
				status := buildpipeline.StatusDone
				var err error
				if u.bag.HasErrors() {
					status = buildpipeline.StatusError
					err = fmt.Errorf("%d diagnostic(s)", u.bag.Len())
				}
				buildpipeline.EmitFile(r.opts.Progress, name, buildpipeline.StageRefine, status, err, time.Since(t0))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for i, res := range results {
		r.res.Visited += res.Visited
		r.res.Linked += res.Linked
		if i == 0 {
			continue
		}
		u := all[i]
		r.res.Files = append(r.res.Files, FileResult{
			Path:   r.fs.Get(u.id).Path,
			FileID: u.id,
			Bag:    u.bag,
			Links:  links[i],
		})
	}
	pass.WithExtra("visited", strconv.Itoa(r.res.Visited)).WithExtra("linked", strconv.Itoa(r.res.Linked))
	elapsed := r.end(string(buildpipeline.StageRefine), idx, started, "linked="+strconv.Itoa(r.res.Linked))
	r.res.Timings.Set(buildpipeline.StageRefine, elapsed)
	return nil
}

// programKey хеширует весь набор файлов; см. programDigest.
func (r *checkRun) programKey() project.Digest {
	ids := make([]source.FileID, len(r.units))
	for i := range r.units {
		ids[i] = r.units[i].id
	}
	return programDigest(r.fs, ids, r.opts.MaxDiagnostics)
}

// fromCache подставляет результаты из кеша, только если попали все файлы.
func (r *checkRun) fromCache() bool {
	if r.opts.Cache == nil || len(r.units) == 0 {
		return false
	}
	program := r.programKey()
	payloads := make([]DiskPayload, len(r.units))
	for i := range r.units {
		u := &r.units[i]
		if u.loadErr != nil {
			return false
		}
		ok, err := r.opts.Cache.Get(fileKey(r.fs.Get(u.id), program), &payloads[i])
		if err != nil {
			r.prelude.bag.Add(diag.New(diag.SevWarning, diag.IOCacheError, source.Span{}, "cache read failed: "+err.Error()))
			return false
		}
		if !ok {
			return false
		}
	}
	for i := range r.units {
		u := &r.units[i]
		for _, d := range payloads[i].Diagnostics {
			u.bag.Add(d)
		}
		name := r.displayName(u)
		buildpipeline.EmitFile(r.opts.Progress, name, buildpipeline.StageRefine, buildpipeline.StatusCached, nil, 0)
		r.res.Files = append(r.res.Files, FileResult{
			Path:   r.fs.Get(u.id).Path,
			FileID: u.id,
			Bag:    u.bag,
			Links:  payloads[i].Links,
			Cached: true,
		})
	}
	return true
}

func (r *checkRun) store() {
	if r.opts.Cache == nil || len(r.units) == 0 {
		return
	}
	program := r.programKey()
	for i := range r.units {
		u := &r.units[i]
		if u.loadErr != nil {
			continue
		}
		f := r.fs.Get(u.id)
		payload := &DiskPayload{
			Schema:      diskCacheSchemaVersion,
			Path:        f.Path,
			ContentHash: project.Digest(f.Hash),
			Diagnostics: u.bag.Items(),
			Links:       r.res.Files[i].Links,
		}
		if err := r.opts.Cache.Put(fileKey(f, program), payload); err != nil {
			r.prelude.bag.Add(diag.New(diag.SevWarning, diag.IOCacheError, source.Span{}, "cache write failed: "+err.Error()))
			return
		}
	}
}

// report собирает итоговый bag: prelude, затем файлы по порядку, и применяет фильтры.
func (r *checkRun) report() {
	merged := diag.NewBag(r.opts.MaxDiagnostics)
	add := func(b *diag.Bag) {
		for _, d := range b.Items() {
			merged.Add(d)
		}
	}
	add(r.prelude.bag)
	for i := range r.res.Files {
		add(r.res.Files[i].Bag)
	}
	applyFilters(merged, r.opts)

	if r.timer != nil {
		report := r.timer.Report()
		r.res.Timing = &report
		appendTimingDiagnostic(merged, timingPayload{
			Kind:    "check",
			Path:    r.opts.BaseDir,
			TotalMS: report.TotalMS,
			Phases:  report.Phases,
		})
	}
	r.res.Bag = merged

	status := buildpipeline.StatusDone
	if merged.HasErrors() {
		status = buildpipeline.StatusError
	}
	buildpipeline.EmitStage(r.opts.Progress, nil, buildpipeline.StageReport, status, nil, r.res.Timings.Sum(buildpipeline.Stages...))
}

// applyFilters: понижение по приоритету, затем --no-warnings, затем --warnings-as-errors.
func applyFilters(bag *diag.Bag, opts Options) {
	if opts.DemotePriority > 0 && opts.DemotePriority <= math.MaxUint16 {
		threshold := diag.Priority(opts.DemotePriority)
		bag.Transform(func(d *diag.Diagnostic) {
			if d.Severity == diag.SevError && d.Priority >= threshold {
				d.Severity = diag.SevWarning
			}
		})
	}
	if opts.IgnoreWarnings {
		bag.Filter(func(d *diag.Diagnostic) bool {
			return d.Severity != diag.SevWarning
		})
	}
	if opts.WarningsAsErrors {
		bag.Transform(func(d *diag.Diagnostic) {
			if d.Severity == diag.SevWarning {
				d.Severity = diag.SevError
			}
		})
	}
}
