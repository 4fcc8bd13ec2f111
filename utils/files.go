package utils

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

// SaveFile writes an uploaded file under dir with a unique name and returns
// the stored filename.
func SaveFile(file multipart.File, header *multipart.FileHeader, dir string) (string, error) {
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return "", err
	}

	ext := filepath.Ext(header.Filename)
	name := fmt.Sprintf("%s%s", uuid.New().String(), ext)
	dst, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		return "", err
	}
	return name, nil
}

// SaveImage stores an uploaded image and a 320px-wide thumbnail next to it
// ("<name>_thumb<ext>"). Returns the public paths of both.
func SaveImage(file multipart.File, header *multipart.FileHeader, dir, publicPrefix string) (string, string, error) {
	name, err := SaveFile(file, header, dir)
	if err != nil {
		return "", "", err
	}

	full := filepath.Join(dir, name)
	img, err := imaging.Open(full)
	if err != nil {
		// Not a decodable image; serve the original only.
		return publicPrefix + "/" + name, "", nil
	}

	thumb := imaging.Resize(img, 320, 0, imaging.Lanczos)
	ext := filepath.Ext(name)
	thumbName := strings.TrimSuffix(name, ext) + "_thumb" + ext
	if err := imaging.Save(thumb, filepath.Join(dir, thumbName)); err != nil {
		return publicPrefix + "/" + name, "", nil
	}

	return publicPrefix + "/" + name, publicPrefix + "/" + thumbName, nil
}
