package driver

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"minic/internal/diag"
	"minic/internal/source"
)

// DirResult содержит результат компиляции одного файла
type DirResult struct {
	Path   string  // путь к файлу
	Result *Result // артефакты компиляции
	Cached bool    // результат взят из дискового кэша
}

// listSourceFiles возвращает отсортированный список всех *.mc файлов в директории
func listSourceFiles(dir string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ".mc") {
			files = append(files, path)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	// Сортируем для детерминированного порядка
	sort.Strings(files)
	return files, nil
}

// CompileDir компилирует все *.mc файлы в директории параллельно. When cache
// is non-nil, files whose content hash is already cached are served from it.
func CompileDir(ctx context.Context, dir string, opts Options, jobs int, cache *DiskCache) (*source.FileSet, []DirResult, error) {
	files, err := listSourceFiles(dir)
	if err != nil {
		return nil, nil, err
	}

	fileSet := source.NewFileSet()
	fileSet.SetBaseDir(dir)
	if len(files) == 0 {
		return fileSet, nil, nil
	}

	// Предзагружаем все файлы; FileSet не потокобезопасен для записи
	fileIDs := make(map[string]source.FileID, len(files))
	loadErrors := make(map[string]error, len(files))
	for _, path := range files {
		fileID, err := fileSet.Load(path)
		if err != nil {
			loadErrors[path] = err
			continue
		}
		fileIDs[path] = fileID
	}

	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// Результаты (индексы уникальны для каждой горутины, мьютекс не нужен)
	results := make([]DirResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			if loadErr, hadError := loadErrors[path]; hadError {
				res := &Result{
					FileSet: fileSet,
					LexBag:  diag.NewBag(1),
					SynBag:  diag.NewBag(0),
					SemaBag: diag.NewBag(0),
				}
				res.LexBag.Add(diag.Diagnostic{
					Severity: diag.SevError,
					Code:     diag.IOReadFailed,
					Message:  "failed to load file: " + loadErr.Error(),
				})
				results[i] = DirResult{Path: path, Result: res}
				return nil
			}

			fileID := fileIDs[path]
			file := fileSet.Get(fileID)

			if cache != nil {
				var payload Artifact
				if ok, err := cache.Get(file.Hash, &payload); err == nil && ok {
					if res := payload.toResult(fileSet, file); res != nil {
						results[i] = DirResult{Path: path, Result: res, Cached: true}
						return nil
					}
				}
			}

			res := Compile(fileSet, fileID, opts)
			results[i] = DirResult{Path: path, Result: res}

			if cache != nil && res.Valid() {
				// кэшируем только чистые компиляции; ошибка записи не фатальна
				_ = cache.Put(file.Hash, newArtifact(path, res))
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fileSet, results, err
	}
	return fileSet, results, nil
}
