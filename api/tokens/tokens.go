// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tokens

import (
	"math/big"
	"net/http"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/vechain/tokenfarm/api/utils"
	"github.com/vechain/tokenfarm/farm"
	"github.com/vechain/tokenfarm/runtime"
)

// Tokens serves the fungible tokens living next to the farm: staked assets and the reward token.
type Tokens struct {
	rt *runtime.Runtime
}

func New(rt *runtime.Runtime) *Tokens {
	return &Tokens{rt}
}

func parseAddress(req *http.Request, name string) (farm.Address, error) {
	addr, err := farm.ParseAddress(mux.Vars(req)[name])
	if err != nil {
		return farm.Address{}, utils.BadRequest(errors.WithMessage(err, name))
	}
	return addr, nil
}

func (t *Tokens) handleGetToken(w http.ResponseWriter, req *http.Request) error {
	addr, err := parseAddress(req, "token")
	if err != nil {
		return err
	}
	var resp Token
	err = t.rt.View(req.Context(), func(env *runtime.Env) error {
		tk := env.Token(addr)
		meta, err := tk.Metadata()
		if err != nil {
			return err
		}
		supply, err := tk.TotalSupply()
		if err != nil {
			return err
		}
		resp = Token{addr, meta.Name, meta.Symbol, meta.Decimals, (*math.HexOrDecimal256)(supply)}
		return nil
	})
	if err != nil {
		return err
	}
	if resp.Symbol == "" {
		return utils.NotFound(errors.New("token not found"))
	}
	return utils.WriteJSON(w, &resp)
}

func (t *Tokens) handleGetBalance(w http.ResponseWriter, req *http.Request) error {
	addr, err := parseAddress(req, "token")
	if err != nil {
		return err
	}
	holder, err := parseAddress(req, "address")
	if err != nil {
		return err
	}
	var balance *big.Int
	err = t.rt.View(req.Context(), func(env *runtime.Env) (err error) {
		balance, err = env.Token(addr).BalanceOf(holder)
		return err
	})
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, &Balance{(*math.HexOrDecimal256)(balance)})
}

func (t *Tokens) handleGetAllowance(w http.ResponseWriter, req *http.Request) error {
	addr, err := parseAddress(req, "token")
	if err != nil {
		return err
	}
	owner, err := parseAddress(req, "owner")
	if err != nil {
		return err
	}
	spender, err := parseAddress(req, "spender")
	if err != nil {
		return err
	}
	var allowance *big.Int
	err = t.rt.View(req.Context(), func(env *runtime.Env) (err error) {
		allowance, err = env.Token(addr).Allowance(owner, spender)
		return err
	})
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, &Allowance{(*math.HexOrDecimal256)(allowance)})
}

func (t *Tokens) handleApprove(w http.ResponseWriter, req *http.Request) error {
	addr, err := parseAddress(req, "token")
	if err != nil {
		return err
	}
	var body Approve
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	if body.Amount == nil {
		return utils.BadRequest(errors.New("amount: required"))
	}
	if err := utils.CheckCaller(body.Caller); err != nil {
		return err
	}
	err = t.rt.Exec(req.Context(), func(env *runtime.Env) error {
		return env.Token(addr).Approve(body.Caller, body.Spender, (*big.Int)(body.Amount))
	})
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, &Allowance{body.Amount})
}

func (t *Tokens) handleTransfer(w http.ResponseWriter, req *http.Request) error {
	addr, err := parseAddress(req, "token")
	if err != nil {
		return err
	}
	var body Transfer
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	if body.Amount == nil {
		return utils.BadRequest(errors.New("amount: required"))
	}
	if err := utils.CheckCaller(body.Caller); err != nil {
		return err
	}
	var balance *big.Int
	err = t.rt.Exec(req.Context(), func(env *runtime.Env) (err error) {
		tk := env.Token(addr)
		if err := tk.Transfer(body.Caller, body.To, (*big.Int)(body.Amount)); err != nil {
			return err
		}
		balance, err = tk.BalanceOf(body.Caller)
		return err
	})
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, &Balance{(*math.HexOrDecimal256)(balance)})
}

func (t *Tokens) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/{token}").
		Methods(http.MethodGet).
		Name("GET /tokens/{token}").
		HandlerFunc(utils.WrapHandlerFunc(t.handleGetToken))
	sub.Path("/{token}/balances/{address}").
		Methods(http.MethodGet).
		Name("GET /tokens/{token}/balances/{address}").
		HandlerFunc(utils.WrapHandlerFunc(t.handleGetBalance))
	sub.Path("/{token}/allowances/{owner}/{spender}").
		Methods(http.MethodGet).
		Name("GET /tokens/{token}/allowances/{owner}/{spender}").
		HandlerFunc(utils.WrapHandlerFunc(t.handleGetAllowance))
	sub.Path("/{token}/approve").
		Methods(http.MethodPost).
		Name("POST /tokens/{token}/approve").
		HandlerFunc(utils.WrapHandlerFunc(t.handleApprove))
	sub.Path("/{token}/transfer").
		Methods(http.MethodPost).
		Name("POST /tokens/{token}/transfer").
		HandlerFunc(utils.WrapHandlerFunc(t.handleTransfer))
}
