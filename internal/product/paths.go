package product

import (
	"fmt"
	"path/filepath"
	"strings"
)

func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// DefaultStreamPath builds the default stage-1 output path for an
// input file: <base>_skstream.skp inside outDir.
func DefaultStreamPath(inPath, outDir string) string {
	return filepath.Join(outDir, stem(inPath)+"_skstream"+Ext)
}

// DefaultCleanPath builds the informative default stage-2 output path:
// <base>_rfi_M<M>_F<FBlock>_<mode>.skp, dropping the M component when
// the stage-1 block size is unknown (mStage1 < 0).
func DefaultCleanPath(skPath, outDir string, mStage1, fBlock int, mode string) string {
	var suffix string
	if mStage1 >= 0 {
		suffix = fmt.Sprintf("rfi_M%d_F%d_%s", mStage1, fBlock, mode)
	} else {
		suffix = fmt.Sprintf("rfi_F%d_%s", fBlock, mode)
	}
	return filepath.Join(outDir, stem(skPath)+"_"+suffix+Ext)
}
