package main

import (
	"archive/zip"
	"compress/gzip"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pierrec/lz4"
	"github.com/pkg/errors"
)

// unpackArchive extracts a gzip, lz4 or zip archive next to the
// original and returns the extracted path. Non-archive paths pass
// through unchanged.
func unpackArchive(filePath string) (string, error) {
	switch filepath.Ext(filePath) {
	case ".gz":
		return unpackStream(filePath, strings.TrimSuffix(filePath, ".gz"), func(r io.Reader) (io.Reader, error) {
			return gzip.NewReader(r)
		})
	case ".lz4":
		return unpackStream(filePath, strings.TrimSuffix(filePath, ".lz4"), func(r io.Reader) (io.Reader, error) {
			return lz4.NewReader(r), nil
		})
	case ".zip":
		return unpackZipArchive(filePath)
	}
	return filePath, nil
}

func unpackStream(filePath, destPath string, wrap func(io.Reader) (io.Reader, error)) (string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return "", err
	}
	defer file.Close()

	reader, err := wrap(file)
	if err != nil {
		return "", errors.Wrapf(err, "cannot read archive %s", filePath)
	}

	outFile, err := os.Create(destPath)
	if err != nil {
		return "", err
	}
	defer outFile.Close()

	if _, err = io.Copy(outFile, reader); err != nil {
		return "", errors.Wrapf(err, "cannot extract %s", filePath)
	}
	return destPath, nil
}

// unpackZipArchive extracts the largest file of the archive, which for
// uploaded datasets is the data file.
func unpackZipArchive(filePath string) (string, error) {
	r, err := zip.OpenReader(filePath)
	if err != nil {
		return "", err
	}
	defer r.Close()

	var largestFile *zip.File
	var largestSize uint64
	for _, f := range r.File {
		if f.FileInfo().IsDir() {
			continue
		}
		if f.UncompressedSize64 > largestSize {
			largestFile = f
			largestSize = f.UncompressedSize64
		}
	}
	if largestFile == nil {
		return "", errors.Errorf("empty archive %s", filePath)
	}

	destPath := filepath.Join(filepath.Dir(filePath), filepath.Base(largestFile.Name))
	rc, err := largestFile.Open()
	if err != nil {
		return "", err
	}
	defer rc.Close()

	outFile, err := os.Create(destPath)
	if err != nil {
		return "", err
	}
	defer outFile.Close()

	if _, err = io.Copy(outFile, rc); err != nil {
		return "", errors.Wrapf(err, "cannot extract %s", filePath)
	}
	return destPath, nil
}
