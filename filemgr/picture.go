package filemgr

import (
	"fmt"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"chefotw/utils"

	"github.com/disintegration/imaging"
	"github.com/julienschmidt/httprouter"
)

const uploadDir = "static/uploads"

// Pictures wider than this get scaled down before saving.
const maxPictureWidth = 1280

// SavePicture decodes, bounds and stores an uploaded picture, returning the
// public URL path of the stored file.
func SavePicture(file multipart.File, header *multipart.FileHeader) (string, error) {
	img, err := imaging.Decode(file)
	if err != nil {
		return "", fmt.Errorf("failed to decode picture: %w", err)
	}

	if img.Bounds().Dx() > maxPictureWidth {
		img = imaging.Resize(img, maxPictureWidth, 0, imaging.Lanczos)
	}

	ext := strings.ToLower(filepath.Ext(utils.SanitizeFilename(header.Filename)))
	if ext == "" {
		ext = ".jpg"
	}

	if err := utils.EnsureDir(uploadDir); err != nil {
		return "", err
	}

	filename := utils.GetUUID() + ext
	if err := imaging.Save(img, filepath.Join(uploadDir, filename)); err != nil {
		return "", fmt.Errorf("failed to save picture: %w", err)
	}

	return "/" + uploadDir + "/" + filename, nil
}

// PictureFromForm pulls the optional "picture" file out of a multipart form.
// Returns "" when no file was attached.
func PictureFromForm(r *http.Request) (string, error) {
	file, header, err := r.FormFile("picture")
	if err != nil {
		if err == http.ErrMissingFile {
			return "", nil
		}
		return "", err
	}
	defer file.Close()

	if !utils.SupportedImageTypes[header.Header.Get("Content-Type")] {
		return "", fmt.Errorf("unsupported picture type %q", header.Header.Get("Content-Type"))
	}

	return SavePicture(file, header)
}

// UploadPicture handles the standalone POST /upload endpoint.
func UploadPicture(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	file, header, err := r.FormFile("picture")
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "No file uploaded!")
		return
	}
	defer file.Close()

	if !utils.ValidateImageFileType(w, header) {
		return
	}

	url, err := SavePicture(file, header)
	if err != nil {
		utils.RespondWithErrorDetail(w, http.StatusInternalServerError, "Failed to store picture", err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"picture": url})
}
