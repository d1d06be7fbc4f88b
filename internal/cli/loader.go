package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/load"
)

// Suite is one declarative trial set loaded from a CUE file.
//
// A suite runs Trials independent protocol executions. With Impostor
// false every round must verify (completeness); with Impostor true the
// tested secret is freshly regenerated each trial and every round must
// be rejected.
type Suite struct {
	Name     string `json:"-"`
	Bits     int    `json:"bits"`
	Trials   int    `json:"trials"`
	Impostor bool   `json:"impostor"`
	Seed     *int64 `json:"seed,omitempty"`
}

// SuiteLoadError represents an error that occurred during suite loading.
type SuiteLoadError struct {
	Code    string
	Message string
}

func (e *SuiteLoadError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Suite loading error codes.
const (
	ErrCodeSuiteNotFound   = "SUITE_DIR_NOT_FOUND"
	ErrCodeSuiteNoFiles    = "SUITE_NO_FILES"
	ErrCodeSuiteLoadFailed = "SUITE_LOAD_FAILED"
	ErrCodeSuiteInvalid    = "SUITE_INVALID"
)

// LoadSuites loads all suites declared in the CUE files of a directory.
//
// The expected shape is a struct of suites under the "suite" field:
//
//	suite: "completeness-128": {
//		bits:     128
//		trials:   100
//		impostor: false
//		seed:     7
//	}
//
// Suites are returned sorted by name for deterministic execution order.
func LoadSuites(dir string) ([]Suite, error) {
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return nil, &SuiteLoadError{Code: ErrCodeSuiteNotFound, Message: fmt.Sprintf("suites directory not found: %s", dir)}
	}
	if err != nil {
		return nil, &SuiteLoadError{Code: ErrCodeSuiteNotFound, Message: fmt.Sprintf("error accessing suites directory: %v", err)}
	}
	if !info.IsDir() {
		return nil, &SuiteLoadError{Code: ErrCodeSuiteNotFound, Message: fmt.Sprintf("not a directory: %s", dir)}
	}

	cueFiles, err := findCUEFiles(dir)
	if err != nil {
		return nil, &SuiteLoadError{Code: ErrCodeSuiteLoadFailed, Message: fmt.Sprintf("error scanning directory: %v", err)}
	}
	if len(cueFiles) == 0 {
		return nil, &SuiteLoadError{Code: ErrCodeSuiteNoFiles, Message: fmt.Sprintf("no CUE files found in %s", dir)}
	}

	ctx := cuecontext.New()
	cfg := &load.Config{Dir: dir}
	instances := load.Instances([]string{"."}, cfg)
	if len(instances) == 0 {
		return nil, &SuiteLoadError{Code: ErrCodeSuiteLoadFailed, Message: "no CUE instances loaded"}
	}

	inst := instances[0]
	if inst.Err != nil {
		return nil, &SuiteLoadError{Code: ErrCodeSuiteLoadFailed, Message: fmt.Sprintf("loading CUE files: %v", inst.Err)}
	}

	value := ctx.BuildInstance(inst)
	if err := value.Err(); err != nil {
		return nil, &SuiteLoadError{Code: ErrCodeSuiteLoadFailed, Message: fmt.Sprintf("building CUE value: %v", err)}
	}

	suitesVal := value.LookupPath(cue.ParsePath("suite"))
	if !suitesVal.Exists() {
		return nil, &SuiteLoadError{Code: ErrCodeSuiteInvalid, Message: "no \"suite\" field found in CUE files"}
	}

	iter, err := suitesVal.Fields()
	if err != nil {
		return nil, &SuiteLoadError{Code: ErrCodeSuiteInvalid, Message: fmt.Sprintf("iterating suites: %v", err)}
	}

	var suites []Suite
	for iter.Next() {
		var s Suite
		if err := iter.Value().Decode(&s); err != nil {
			return nil, &SuiteLoadError{Code: ErrCodeSuiteInvalid, Message: fmt.Sprintf("suite %q: %v", iter.Label(), err)}
		}
		s.Name = iter.Label()

		if s.Bits <= 0 {
			return nil, &SuiteLoadError{Code: ErrCodeSuiteInvalid, Message: fmt.Sprintf("suite %q: bits must be positive", s.Name)}
		}
		if s.Trials <= 0 {
			return nil, &SuiteLoadError{Code: ErrCodeSuiteInvalid, Message: fmt.Sprintf("suite %q: trials must be positive", s.Name)}
		}

		suites = append(suites, s)
	}

	if len(suites) == 0 {
		return nil, &SuiteLoadError{Code: ErrCodeSuiteInvalid, Message: "no suites declared"}
	}

	sort.Slice(suites, func(i, j int) bool { return suites[i].Name < suites[j].Name })
	return suites, nil
}

// findCUEFiles walks the directory and returns all .cue file paths.
func findCUEFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && filepath.Ext(path) == ".cue" {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}
