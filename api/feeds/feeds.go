// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package feeds

import (
	"math/big"
	"net/http"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/vechain/tokenfarm/api/utils"
	"github.com/vechain/tokenfarm/builtin/pricefeed"
	"github.com/vechain/tokenfarm/farm"
	"github.com/vechain/tokenfarm/runtime"
)

var errFeedNotFound = errors.New("feed not found")

// Feeds lets external price sources publish answers and anyone read them.
type Feeds struct {
	rt *runtime.Runtime
}

func New(rt *runtime.Runtime) *Feeds {
	return &Feeds{rt}
}

func convertRound(addr farm.Address, r *pricefeed.Round) *Round {
	return &Round{
		Feed:      addr,
		RoundID:   r.ID,
		Answer:    (*math.HexOrDecimal256)(r.Answer),
		Decimals:  r.Decimals,
		UpdatedAt: r.UpdatedAt,
	}
}

func (f *Feeds) handleGetFeed(w http.ResponseWriter, req *http.Request) error {
	addr, err := farm.ParseAddress(mux.Vars(req)["feed"])
	if err != nil {
		return utils.BadRequest(errors.WithMessage(err, "feed"))
	}
	var round *pricefeed.Round
	err = f.rt.View(req.Context(), func(env *runtime.Env) (err error) {
		round, err = env.PriceFeed(addr).LatestRoundData()
		return err
	})
	if err != nil {
		return err
	}
	if round.ID == 0 {
		return utils.NotFound(errFeedNotFound)
	}
	return utils.WriteJSON(w, convertRound(addr, round))
}

func (f *Feeds) handleUpdateAnswer(w http.ResponseWriter, req *http.Request) error {
	addr, err := farm.ParseAddress(mux.Vars(req)["feed"])
	if err != nil {
		return utils.BadRequest(errors.WithMessage(err, "feed"))
	}
	var body UpdateAnswer
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	if body.Answer == nil {
		return utils.BadRequest(errors.New("answer: required"))
	}

	var round *pricefeed.Round
	err = f.rt.Exec(req.Context(), func(env *runtime.Env) error {
		feed := env.PriceFeed(addr)
		latest, err := feed.LatestRoundData()
		if err != nil {
			return err
		}
		// only feeds seeded at genesis can be refreshed
		if latest.ID == 0 {
			return utils.NotFound(errFeedNotFound)
		}
		if err := feed.UpdateAnswer((*big.Int)(body.Answer), env.Now()); err != nil {
			return err
		}
		round, err = feed.LatestRoundData()
		return err
	})
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, convertRound(addr, round))
}

func (f *Feeds) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/{feed}").
		Methods(http.MethodGet).
		Name("GET /feeds/{feed}").
		HandlerFunc(utils.WrapHandlerFunc(f.handleGetFeed))
	sub.Path("/{feed}").
		Methods(http.MethodPost).
		Name("POST /feeds/{feed}").
		HandlerFunc(utils.WrapHandlerFunc(f.handleUpdateAnswer))
}
