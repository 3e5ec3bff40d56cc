package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/udisondev/athena/internal/combat"
	"github.com/udisondev/athena/internal/model"
	"github.com/udisondev/athena/internal/optimizer"
)

const maxBodyBytes = 1 << 20

type inventoryResponse struct {
	Stamps       map[int][]model.ItemDef `json:"stamps"` // keyed by slot
	Cores        []model.ItemDef         `json:"cores"`
	WeaponStamps []model.ItemDef         `json:"weapon_stamps"`
	Counts       model.InventoryCounts   `json:"counts"`
}

type evaluateRequest struct {
	CharBaseAtk   *float64          `json:"char_base_atk"`
	WeaponBaseAtk *float64          `json:"weapon_base_atk"`
	Stamps        []string          `json:"stamps"`
	Core          string            `json:"core"`
	WeaponStamp   string            `json:"weapon_stamp"`
	Team          *model.TeamConfig `json:"team"`
}

type optimizeRequest struct {
	CharBaseAtk   *float64          `json:"char_base_atk"`
	WeaponBaseAtk *float64          `json:"weapon_base_atk"`
	Team          *model.TeamConfig `json:"team"`
}

// buildResponse is a build with its score.
type buildResponse struct {
	Stamps      []string      `json:"stamps"`
	Core        string        `json:"core"`
	WeaponStamp string        `json:"weapon_stamp"`
	Result      combat.Result `json:"result"`
	Evaluated   int           `json:"evaluated,omitempty"`
}

func toDefs(items []*model.Item) []model.ItemDef {
	defs := make([]model.ItemDef, 0, len(items))
	for _, it := range items {
		defs = append(defs, it.Def())
	}
	return defs
}

func (s *Server) handleInventory(w http.ResponseWriter, r *http.Request) {
	resp := inventoryResponse{
		Stamps:       make(map[int][]model.ItemDef, model.StampSlots),
		Cores:        toDefs(s.inv.Cores()),
		WeaponStamps: toDefs(s.inv.WeaponStamps()),
		Counts:       s.inv.Counts(),
	}
	for slot := 1; slot <= model.StampSlots; slot++ {
		resp.Stamps[slot] = toDefs(s.inv.StampsForSlot(slot))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAddItem(w http.ResponseWriter, r *http.Request) {
	var def model.ItemDef
	if err := decodeBody(r, &def); err != nil {
		writeError(w, err)
		return
	}
	item, err := def.Item()
	if err != nil {
		writeError(w, err)
		return
	}
	if err := s.inv.Add(item); err != nil {
		writeError(w, err)
		return
	}
	if s.store != nil {
		if err := s.store.SaveItem(r.Context(), item); err != nil {
			_ = s.inv.Remove(item.Category(), item.Name())
			writeError(w, fmt.Errorf("saving %s: %w", item, err))
			return
		}
	}

	slog.Info("item added", "item", item.String())
	writeJSON(w, http.StatusCreated, item.Def())
}

func (s *Server) handleDeleteItem(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	category, err := model.ParseCategory(vars["category"])
	if err != nil {
		writeError(w, err)
		return
	}
	name := vars["name"]

	item, ok := s.inv.Get(category, name)
	if !ok {
		writeError(w, fmt.Errorf("%w: %s:%s", model.ErrItemNotFound, category, name))
		return
	}
	if s.store != nil {
		err := s.store.DeleteItem(r.Context(), category, name)
		if err != nil && !errors.Is(err, model.ErrItemNotFound) {
			writeError(w, fmt.Errorf("deleting %s: %w", item, err))
			return
		}
	}
	if err := s.inv.Remove(category, name); err != nil {
		writeError(w, err)
		return
	}

	slog.Info("item removed", "item", item.String())
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	var req evaluateRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	sc, err := s.scenario(req)
	if err != nil {
		writeError(w, err)
		return
	}
	res, err := s.evaluator.Evaluate(sc)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newBuildResponse(optimizer.Build{
		Stamps:      sc.Stamps,
		Core:        sc.Core,
		WeaponStamp: sc.WeaponStamp,
	}, res, 0))
}

func (s *Server) handleOptimize(w http.ResponseWriter, r *http.Request) {
	var req optimizeRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	best, err := s.optimizer(nil).Optimize(r.Context(), s.optimizeRequest(req))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newBuildResponse(best.Build, best.Result, best.Evaluated))
}

// scenario resolves item names of req against the inventory.
func (s *Server) scenario(req evaluateRequest) (combat.Scenario, error) {
	sc := combat.Scenario{
		CharBaseAtk:   valueOr(req.CharBaseAtk, s.defaults.CharBaseAtk),
		WeaponBaseAtk: valueOr(req.WeaponBaseAtk, s.defaults.WeaponBaseAtk),
		Team:          s.defaults.Team,
	}
	if req.Team != nil {
		sc.Team = *req.Team
	}
	if len(req.Stamps) != model.StampSlots {
		return sc, fmt.Errorf("%w: want %d stamps, got %d", model.ErrInvalidInput, model.StampSlots, len(req.Stamps))
	}

	var err error
	for i, name := range req.Stamps {
		if sc.Stamps[i], err = s.lookup(model.CategoryStamp, name); err != nil {
			return sc, err
		}
	}
	if sc.Core, err = s.lookup(model.CategoryCore, req.Core); err != nil {
		return sc, err
	}
	if sc.WeaponStamp, err = s.lookup(model.CategoryWeaponStamp, req.WeaponStamp); err != nil {
		return sc, err
	}
	return sc, nil
}

func (s *Server) optimizeRequest(req optimizeRequest) optimizer.Request {
	out := optimizer.Request{
		Candidates:    optimizer.CandidatesFrom(s.inv),
		CharBaseAtk:   valueOr(req.CharBaseAtk, s.defaults.CharBaseAtk),
		WeaponBaseAtk: valueOr(req.WeaponBaseAtk, s.defaults.WeaponBaseAtk),
		Team:          s.defaults.Team,
	}
	if req.Team != nil {
		out.Team = *req.Team
	}
	return out
}

func (s *Server) lookup(category model.Category, name string) (*model.Item, error) {
	item, ok := s.inv.Get(category, name)
	if !ok {
		return nil, fmt.Errorf("%w: %s:%s", model.ErrItemNotFound, category, name)
	}
	return item, nil
}

func newBuildResponse(b optimizer.Build, res combat.Result, evaluated int) buildResponse {
	return buildResponse{
		Stamps:      b.StampNames(),
		Core:        b.Core.Name(),
		WeaponStamp: b.WeaponStamp.Name(),
		Result:      res,
		Evaluated:   evaluated,
	}
}

// decodeBody decodes a JSON body into v. An empty body leaves v untouched.
func decodeBody(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: decoding request body: %v", model.ErrInvalidInput, err)
	}
	return nil
}

func valueOr(p *float64, def float64) float64 {
	if p == nil {
		return def
	}
	return *p
}
