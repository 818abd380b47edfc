package handlers

import (
	"io"
	"net/http"

	"github.com/anima-music/anima/api"
	internalctx "github.com/anima-music/anima/internal/context"
	"github.com/anima-music/anima/internal/detection"
	"github.com/getsentry/sentry-go"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const maxImageSize = 5 << 20 // 5 MiB

func DetectionRouter(detector *detection.Client) func(chi.Router) {
	return func(r chi.Router) {
		r.Post("/faces", detectFacesHandler(detector))
	}
}

func detectFacesHandler(detector *detection.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		log := internalctx.GetLogger(ctx)

		r.Body = http.MaxBytesReader(w, r.Body, maxImageSize)
		if err := r.ParseMultipartForm(maxImageSize); err != nil {
			RespondError(w, http.StatusBadRequest, "Imagen demasiado grande o petición inválida")
			return
		}
		file, _, err := r.FormFile("image")
		if err != nil {
			RespondError(w, http.StatusBadRequest, "Falta la imagen")
			return
		}
		defer file.Close()

		image, err := io.ReadAll(file)
		if err != nil {
			RespondError(w, http.StatusBadRequest, "Imagen ilegible")
			return
		}
		switch http.DetectContentType(image) {
		case "image/jpeg", "image/png":
		default:
			RespondError(w, http.StatusBadRequest, "Formato de imagen no soportado")
			return
		}

		faces, err := detector.DetectFaces(ctx, image)
		if err != nil {
			sentry.GetHubFromContext(ctx).CaptureException(err)
			log.Error("face detection failed", zap.Error(err))
			RespondError(w, http.StatusBadGateway, "No se pudo analizar la imagen")
			return
		}

		dominant := "UNKNOWN"
		if len(faces) > 0 && len(faces[0].Emotions) > 0 {
			dominant = faces[0].Emotions[0].Name
		}

		RespondJSON(w, api.FaceDetectionResponse{Faces: faces, DominantEmotion: dominant})
	}
}
