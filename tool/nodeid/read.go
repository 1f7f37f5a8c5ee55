// nodeid package is used for reading identifier that consul agent persisted for local node

package nodeid

import (
	"errors"
	"fmt"
	"io/ioutil"
	"path/filepath"
	"strings"
)

const fileName = "node-id"

var ErrUnreadable = errors.New("unable to read node-id file in consul data directory")

// read <dataDir>/node-id, whitespace around identifier is trimmed instead of using file content as raw text.
// consul writes the file without trailing newline, so trimming matters only for hand-written files
func ReadFromDataDir(dataDir string) (id string, err error) {
	path := filepath.Join(dataDir, fileName)
	b, err := ioutil.ReadFile(path)
	if err != nil {
		err = fmt.Errorf("%w (path: %s), err: %v", ErrUnreadable, path, err)
		return
	}

	id = strings.TrimSpace(string(b))
	return
}
