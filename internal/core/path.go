package core

import (
	"path/filepath"
	"regexp"
	"strings"
)

const NpmDir = "npm"

var relativeSpecifier = regexp.MustCompile(`^\..*(\.jsx?)?$`)

func IsRelativeSpecifier(specifier string) bool {
	return relativeSpecifier.MatchString(specifier)
}

// LocalReference normalizes a resolved relative specifier into a template
// reference: forward slashes, leading "./", no script extension.
func LocalReference(specifier string, index bool) string {
	ref := filepath.ToSlash(specifier)
	ext := filepath.Ext(ref)
	if ext == ".jsx" || ext == ".js" {
		ref = strings.TrimSuffix(ref, ext)
	}
	if index {
		ref = strings.TrimSuffix(ref, "/") + "/index"
	}
	ref = filepath.ToSlash(filepath.Clean(ref))
	if strings.HasPrefix(ref, ".") {
		return ref
	}
	return "./" + ref
}

// NpmRelativePath is the path from the compiled resource's directory to the
// compiled npm directory.
func NpmRelativePath(sourcePath, outputPath, resourcePath string) (string, error) {
	rel, err := filepath.Rel(sourcePath, resourcePath)
	if err != nil {
		return "", err
	}
	targetFileDir := filepath.Dir(filepath.Join(outputPath, rel))
	npmRel, err := filepath.Rel(targetFileDir, filepath.Join(outputPath, NpmDir))
	if err != nil {
		return "", err
	}
	npmRel = filepath.ToSlash(npmRel)
	if !strings.HasPrefix(npmRel, ".") {
		npmRel = "./" + npmRel
	}
	return npmRel, nil
}

// NpmReference builds the reference to a package's miniapp entry inside the
// compiled npm directory. entryRel is the entry path relative to the package
// directory.
func NpmReference(npmRelativePath, pkgDir, entryRel string) string {
	joined := filepath.ToSlash(filepath.Join(npmRelativePath, NpmDirName(pkgDir), entryRel))
	return "./" + joined
}

// PackageDirFromPath returns the first path segment after the last
// node_modules directory of an installed file path.
func PackageDirFromPath(file string) string {
	file = filepath.ToSlash(file)
	const marker = "/node_modules/"
	i := strings.LastIndex(file, marker)
	if i < 0 {
		return ""
	}
	rest := file[i+len(marker):]
	if j := strings.Index(rest, "/"); j >= 0 {
		return rest[:j]
	}
	return rest
}

// PathAfterPackageDir returns the part of file following pkgDir's directory in
// the last node_modules segment, with a leading slash.
func PathAfterPackageDir(file, pkgDir string) string {
	file = filepath.ToSlash(file)
	marker := "/node_modules/" + pkgDir
	i := strings.LastIndex(file, marker)
	if i < 0 {
		return ""
	}
	return file[i+len(marker):]
}
