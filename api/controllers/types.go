package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/minhle2212044/greencycle-backend/api/responses"
	"github.com/minhle2212044/greencycle-backend/api/validators"
	materialtypes "github.com/minhle2212044/greencycle-backend/internal/types"
	"github.com/minhle2212044/greencycle-backend/pkg/logger"
)

func AddTypeToMaterial(svc materialtypes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		materialID, err := validators.ParsePathID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var input materialtypes.CreateTypeInput
		if err := decodeInput(r, &input); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		image, err := imageFile(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		typ, err := svc.AddToMaterial(r.Context(), materialID, input, image)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, typ)
	}
}

func ListTypes(svc materialtypes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, limit, err := pageParams(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.List(r.Context(), page, limit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

func ListTypesByMaterial(svc materialtypes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		materialID, err := validators.ParsePathID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		page, limit, err := pageParams(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.ListByMaterial(r.Context(), materialID, page, limit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

func GetType(svc materialtypes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		typ, err := svc.GetByName(r.Context(), chi.URLParam(r, "name"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, typ)
	}
}

func UpdateType(svc materialtypes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input materialtypes.UpdateTypeInput
		if err := decodeInput(r, &input); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		image, err := imageFile(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		typ, err := svc.UpdateByName(r.Context(), chi.URLParam(r, "name"), input, image)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, typ)
	}
}

func DeleteType(svc materialtypes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.DeleteByName(r.Context(), chi.URLParam(r, "name")); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"message": "type deleted"})
	}
}
