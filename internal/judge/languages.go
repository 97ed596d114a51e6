package judge

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/tcp_snm/leetlab/internal/leetlab_errors"
)

// ids of the judge's default language table
var builtinLanguages = map[string]int{
	"c":          50,
	"cpp":        54,
	"csharp":     51,
	"go":         60,
	"java":       62,
	"javascript": 63,
	"kotlin":     78,
	"python":     71,
	"ruby":       72,
	"rust":       73,
	"typescript": 74,
}

var languageAliases = map[string]string{
	"c++":     "cpp",
	"c#":      "csharp",
	"golang":  "go",
	"js":      "javascript",
	"node":    "javascript",
	"node.js": "javascript",
	"py":      "python",
	"python3": "python",
	"ts":      "typescript",
}

type languageLister interface {
	Languages(ctx context.Context) ([]Language, error)
}

// Registry maps author supplied language names to judge language ids.
// When backed by a lister the judge's table is fetched on first use and
// kept for the lifetime of the registry. Failed fetches are not cached.
type Registry struct {
	lister  languageLister
	mu      sync.Mutex
	table   map[string]int
	loading chan struct{} // closed when the fetch in flight finishes
	logger  *logrus.Entry
}

// NewRegistry returns a registry over the built-in table when lister is nil.
func NewRegistry(lister languageLister) *Registry {
	r := &Registry{
		lister: lister,
		logger: logrus.WithFields(logrus.Fields{
			"from": "language-registry",
		}),
	}
	if lister == nil {
		r.table = builtinLanguages
	}
	return r
}

func NormalizeLanguage(name string) string {
	key := strings.ToLower(strings.TrimSpace(name))
	if alias, ok := languageAliases[key]; ok {
		return alias
	}
	return key
}

func (r *Registry) Resolve(ctx context.Context, name string) (int, error) {
	table, err := r.loadTable(ctx)
	if err != nil {
		return 0, err
	}
	id, ok := table[NormalizeLanguage(name)]
	if !ok {
		return 0, fmt.Errorf("%w, %s", leetlab_errors.ErrUnsupportedLanguage, name)
	}
	return id, nil
}

// loadTable lets one caller fetch the table while the others wait for it
// or for their own ctx.
func (r *Registry) loadTable(ctx context.Context) (map[string]int, error) {
	for {
		r.mu.Lock()
		if r.table != nil {
			table := r.table
			r.mu.Unlock()
			return table, nil
		}
		if r.loading == nil {
			done := make(chan struct{})
			r.loading = done
			r.mu.Unlock()

			table, err := r.fetchTable(ctx)

			r.mu.Lock()
			if err == nil {
				r.table = table
			}
			r.loading = nil
			r.mu.Unlock()
			close(done)
			return table, err
		}
		loading := r.loading
		r.mu.Unlock()

		select {
		case <-loading:
			// the fetch may have failed, look again
		case <-ctx.Done():
			return nil, fmt.Errorf(
				"%w, waiting for the language table, %w",
				leetlab_errors.ErrVerificationCancelled,
				ctx.Err(),
			)
		}
	}
}

func (r *Registry) fetchTable(ctx context.Context) (map[string]int, error) {
	languages, err := r.lister.Languages(ctx)
	if err != nil {
		err = fmt.Errorf("%w, %w", leetlab_errors.ErrLanguageTableUnavailable, err)
		r.logger.Error(err)
		return nil, err
	}

	table := make(map[string]int, len(languages))
	for _, lang := range languages {
		key := remoteLanguageKey(lang.Name)
		if key == "" {
			continue
		}
		table[key] = pickLanguageID(key, table[key], lang.ID)
	}
	if len(table) == 0 {
		err = fmt.Errorf(
			"%w, %w, judge returned an empty language table",
			leetlab_errors.ErrLanguageTableUnavailable,
			leetlab_errors.ErrInternalJudge,
		)
		r.logger.Error(err)
		return nil, err
	}

	r.logger.Infof("cached %d languages from judge", len(table))
	return table, nil
}

// pickLanguageID keeps the built-in id for a language when the judge offers
// it, so "cpp" stays on GCC when Clang builds are listed too. Otherwise the
// newest version, the one with the highest id, wins.
func pickLanguageID(key string, current, candidate int) int {
	if current == 0 {
		return candidate
	}
	if builtin, ok := builtinLanguages[key]; ok {
		if current == builtin {
			return current
		}
		if candidate == builtin {
			return candidate
		}
	}
	return max(current, candidate)
}

// "Python (3.8.1)" -> "python", "C++ (GCC 9.2.0)" -> "cpp"
func remoteLanguageKey(name string) string {
	if i := strings.Index(name, "("); i >= 0 {
		name = name[:i]
	}
	return NormalizeLanguage(name)
}
