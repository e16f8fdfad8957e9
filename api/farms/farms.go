// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package farms

import (
	"math/big"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/vechain/tokenfarm/api/utils"
	"github.com/vechain/tokenfarm/builtin/reverts"
	"github.com/vechain/tokenfarm/farm"
	"github.com/vechain/tokenfarm/runtime"
)

type Farms struct {
	rt *runtime.Runtime
}

func New(rt *runtime.Runtime) *Farms {
	return &Farms{rt}
}

func parseAddress(req *http.Request, name string) (farm.Address, error) {
	addr, err := farm.ParseAddress(mux.Vars(req)[name])
	if err != nil {
		return farm.Address{}, utils.BadRequest(errors.WithMessage(err, name))
	}
	return addr, nil
}

func parseBody(req *http.Request, v any) error {
	if err := utils.ParseJSON(req.Body, v); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	return nil
}

func (f *Farms) handleGetFarm(w http.ResponseWriter, req *http.Request) error {
	var resp Farm
	err := f.rt.View(req.Context(), func(env *runtime.Env) (err error) {
		tf := env.Farm()
		resp.Address = tf.Address()
		if resp.Owner, err = tf.Owner(); err != nil {
			return err
		}
		if resp.RewardToken, err = tf.RewardToken(); err != nil {
			return err
		}
		reserve, err := tf.Reserve()
		if err != nil {
			return err
		}
		resp.Reserve = hexOrDecimal(reserve)
		if resp.AllowedTokens, err = tf.AllowedTokens(); err != nil {
			return err
		}
		resp.StakerCount, err = tf.StakerCount()
		return err
	})
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, &resp)
}

func (f *Farms) handleGetTokens(w http.ResponseWriter, req *http.Request) error {
	var tokens []farm.Address
	err := f.rt.View(req.Context(), func(env *runtime.Env) (err error) {
		tokens, err = env.Farm().AllowedTokens()
		return err
	})
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, tokens)
}

func (f *Farms) handleAddToken(w http.ResponseWriter, req *http.Request) error {
	var body AddToken
	if err := parseBody(req, &body); err != nil {
		return err
	}
	if err := utils.CheckCaller(body.Caller); err != nil {
		return err
	}
	err := f.rt.Exec(req.Context(), func(env *runtime.Env) error {
		return env.Farm().AddAllowedTokens(body.Caller, body.Token)
	})
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, utils.M{"token": body.Token})
}

func (f *Farms) handleGetTokenValue(w http.ResponseWriter, req *http.Request) error {
	token, err := parseAddress(req, "token")
	if err != nil {
		return err
	}
	var resp TokenValue
	err = f.rt.View(req.Context(), func(env *runtime.Env) error {
		price, decimals, err := env.Farm().GetTokenValue(token)
		if err != nil {
			return err
		}
		resp = TokenValue{hexOrDecimal(price), decimals}
		return nil
	})
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, &resp)
}

func (f *Farms) handleGetFeed(w http.ResponseWriter, req *http.Request) error {
	token, err := parseAddress(req, "token")
	if err != nil {
		return err
	}
	var (
		feed farm.Address
		ok   bool
	)
	err = f.rt.View(req.Context(), func(env *runtime.Env) (err error) {
		feed, ok, err = env.Farm().PriceFeed(token)
		return err
	})
	if err != nil {
		return err
	}
	if !ok {
		return utils.NotFound(reverts.ErrNoPriceFeed)
	}
	return utils.WriteJSON(w, &PriceFeed{feed})
}

func (f *Farms) handleSetFeed(w http.ResponseWriter, req *http.Request) error {
	token, err := parseAddress(req, "token")
	if err != nil {
		return err
	}
	var body SetFeed
	if err := parseBody(req, &body); err != nil {
		return err
	}
	if err := utils.CheckCaller(body.Caller); err != nil {
		return err
	}
	err = f.rt.Exec(req.Context(), func(env *runtime.Env) error {
		return env.Farm().SetPriceFeedContract(body.Caller, token, body.Feed)
	})
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, &PriceFeed{body.Feed})
}

func (f *Farms) handleGetStakers(w http.ResponseWriter, req *http.Request) error {
	var stakers []farm.Address
	err := f.rt.View(req.Context(), func(env *runtime.Env) (err error) {
		stakers, err = env.Farm().Stakers()
		return err
	})
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, stakers)
}

func (f *Farms) handleGetStaker(w http.ResponseWriter, req *http.Request) error {
	index, err := strconv.ParseUint(mux.Vars(req)["index"], 10, 64)
	if err != nil {
		return utils.BadRequest(errors.WithMessage(err, "index"))
	}
	var staker farm.Address
	err = f.rt.View(req.Context(), func(env *runtime.Env) (err error) {
		staker, err = env.Farm().Staker(index)
		return err
	})
	if errors.Is(err, reverts.ErrIndexOutOfRange) {
		return utils.NotFound(err)
	}
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, &Staker{index, staker})
}

func (f *Farms) handleGetAccount(w http.ResponseWriter, req *http.Request) error {
	addr, err := parseAddress(req, "address")
	if err != nil {
		return err
	}
	resp := Account{Address: addr, Stakes: []Stake{}}
	err = f.rt.View(req.Context(), func(env *runtime.Env) (err error) {
		tf := env.Farm()
		if resp.UniqueTokens, err = tf.UniqueTokensStaked(addr); err != nil {
			return err
		}
		tokens, err := tf.AllowedTokens()
		if err != nil {
			return err
		}
		priced := true
		for _, token := range tokens {
			bal, err := tf.StakingBalance(token, addr)
			if err != nil {
				return err
			}
			if bal.Sign() == 0 {
				continue
			}
			stake := Stake{Token: token, Balance: hexOrDecimal(bal)}
			value, err := tf.GetUserSingleTokenValue(addr, token)
			switch {
			case errors.Is(err, reverts.ErrNoPriceFeed):
				priced = false
			case err != nil:
				return err
			default:
				stake.Value = hexOrDecimal(value)
			}
			resp.Stakes = append(resp.Stakes, stake)
		}
		// the total is only known when every stake has a price
		if !priced {
			return nil
		}
		total, err := tf.GetUserTotalValue(addr)
		if err != nil {
			return err
		}
		resp.TotalValue = hexOrDecimal(total)
		return nil
	})
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, &resp)
}

func (f *Farms) handleStake(w http.ResponseWriter, req *http.Request) error {
	var body StakeTokens
	if err := parseBody(req, &body); err != nil {
		return err
	}
	if err := utils.CheckCaller(body.Caller); err != nil {
		return err
	}
	if body.Amount == nil {
		return utils.BadRequest(errors.New("amount: required"))
	}
	err := f.rt.Exec(req.Context(), func(env *runtime.Env) error {
		return env.Farm().StakeTokens(body.Caller, (*big.Int)(body.Amount), body.Token)
	})
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, &Amount{body.Amount})
}

func (f *Farms) handleUnstake(w http.ResponseWriter, req *http.Request) error {
	var body UnstakeTokens
	if err := parseBody(req, &body); err != nil {
		return err
	}
	if err := utils.CheckCaller(body.Caller); err != nil {
		return err
	}
	var amount *big.Int
	err := f.rt.Exec(req.Context(), func(env *runtime.Env) (err error) {
		amount, err = env.Farm().UnstakeTokens(body.Caller, body.Token)
		return err
	})
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, &Amount{hexOrDecimal(amount)})
}

func (f *Farms) handleIssue(w http.ResponseWriter, req *http.Request) error {
	var body Caller
	if err := parseBody(req, &body); err != nil {
		return err
	}
	if err := utils.CheckCaller(body.Caller); err != nil {
		return err
	}
	resp := []Reward{}
	err := f.rt.Exec(req.Context(), func(env *runtime.Env) error {
		rewards, err := env.Farm().IssueTokens(body.Caller)
		if err != nil {
			return err
		}
		for _, r := range rewards {
			resp = append(resp, Reward{r.Staker, hexOrDecimal(r.Amount)})
		}
		return nil
	})
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, resp)
}

func (f *Farms) handleIssueSingle(w http.ResponseWriter, req *http.Request) error {
	addr, err := parseAddress(req, "address")
	if err != nil {
		return err
	}
	var body Caller
	if err := parseBody(req, &body); err != nil {
		return err
	}
	if err := utils.CheckCaller(body.Caller); err != nil {
		return err
	}
	var amount *big.Int
	err = f.rt.Exec(req.Context(), func(env *runtime.Env) (err error) {
		amount, err = env.Farm().IssueSingleToken(body.Caller, addr)
		return err
	})
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, &Reward{addr, hexOrDecimal(amount)})
}

func (f *Farms) handleTransferOwnership(w http.ResponseWriter, req *http.Request) error {
	var body TransferOwnership
	if err := parseBody(req, &body); err != nil {
		return err
	}
	if err := utils.CheckCaller(body.Caller); err != nil {
		return err
	}
	err := f.rt.Exec(req.Context(), func(env *runtime.Env) error {
		return env.Farm().TransferOwnership(body.Caller, body.Owner)
	})
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, utils.M{"owner": body.Owner})
}

func (f *Farms) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").
		Methods(http.MethodGet).
		Name("GET /farm").
		HandlerFunc(utils.WrapHandlerFunc(f.handleGetFarm))
	sub.Path("/tokens").
		Methods(http.MethodGet).
		Name("GET /farm/tokens").
		HandlerFunc(utils.WrapHandlerFunc(f.handleGetTokens))
	sub.Path("/tokens").
		Methods(http.MethodPost).
		Name("POST /farm/tokens").
		HandlerFunc(utils.WrapHandlerFunc(f.handleAddToken))
	sub.Path("/tokens/{token}/value").
		Methods(http.MethodGet).
		Name("GET /farm/tokens/{token}/value").
		HandlerFunc(utils.WrapHandlerFunc(f.handleGetTokenValue))
	sub.Path("/tokens/{token}/feed").
		Methods(http.MethodGet).
		Name("GET /farm/tokens/{token}/feed").
		HandlerFunc(utils.WrapHandlerFunc(f.handleGetFeed))
	sub.Path("/tokens/{token}/feed").
		Methods(http.MethodPost).
		Name("POST /farm/tokens/{token}/feed").
		HandlerFunc(utils.WrapHandlerFunc(f.handleSetFeed))
	sub.Path("/stakers").
		Methods(http.MethodGet).
		Name("GET /farm/stakers").
		HandlerFunc(utils.WrapHandlerFunc(f.handleGetStakers))
	sub.Path("/stakers/{index}").
		Methods(http.MethodGet).
		Name("GET /farm/stakers/{index}").
		HandlerFunc(utils.WrapHandlerFunc(f.handleGetStaker))
	sub.Path("/accounts/{address}").
		Methods(http.MethodGet).
		Name("GET /farm/accounts/{address}").
		HandlerFunc(utils.WrapHandlerFunc(f.handleGetAccount))
	sub.Path("/stake").
		Methods(http.MethodPost).
		Name("POST /farm/stake").
		HandlerFunc(utils.WrapHandlerFunc(f.handleStake))
	sub.Path("/unstake").
		Methods(http.MethodPost).
		Name("POST /farm/unstake").
		HandlerFunc(utils.WrapHandlerFunc(f.handleUnstake))
	sub.Path("/issue").
		Methods(http.MethodPost).
		Name("POST /farm/issue").
		HandlerFunc(utils.WrapHandlerFunc(f.handleIssue))
	sub.Path("/issue/{address}").
		Methods(http.MethodPost).
		Name("POST /farm/issue/{address}").
		HandlerFunc(utils.WrapHandlerFunc(f.handleIssueSingle))
	sub.Path("/owner").
		Methods(http.MethodPost).
		Name("POST /farm/owner").
		HandlerFunc(utils.WrapHandlerFunc(f.handleTransferOwnership))
}
