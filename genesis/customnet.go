// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"bytes"
	"math/big"
	"os"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/vechain/tokenfarm/builtin"
	"github.com/vechain/tokenfarm/farm"
	"github.com/vechain/tokenfarm/runtime"
)

// CustomGenesis is user customized genesis.
type CustomGenesis struct {
	LaunchTime  uint64        `yaml:"launchTime"`
	Owner       *farm.Address `yaml:"owner"`
	RewardToken RewardToken   `yaml:"rewardToken"`
	Tokens      []Token       `yaml:"tokens"`
	Feeds       []Feed        `yaml:"feeds"`
	// Allowed lists the symbols of the tokens accepted for staking, in enumeration order.
	Allowed []string `yaml:"allowed"`
}

// RewardToken configures the supply of the reward token. The owner keeps KeptBalance,
// the rest funds the farm's reward reserve.
type RewardToken struct {
	Supply      *math.HexOrDecimal256 `yaml:"supply"`
	KeptBalance *math.HexOrDecimal256 `yaml:"keptBalance"`
}

// Token is a stakeable token deployed at genesis.
type Token struct {
	Symbol      string        `yaml:"symbol"`
	Name        string        `yaml:"name"`
	Decimals    uint8         `yaml:"decimals"`
	Address     *farm.Address `yaml:"address"`
	Allocations []Allocation  `yaml:"allocations"`
}

// Allocation is an initial token balance.
type Allocation struct {
	Address farm.Address          `yaml:"address"`
	Amount  *math.HexOrDecimal256 `yaml:"amount"`
}

// Feed is a price feed deployed at genesis and mapped to the listed token symbols.
type Feed struct {
	Name     string                `yaml:"name"`
	Address  *farm.Address         `yaml:"address"`
	Decimals uint8                 `yaml:"decimals"`
	Answer   *math.HexOrDecimal256 `yaml:"answer"`
	Tokens   []string              `yaml:"tokens"`
}

// LoadCustomGenesis reads a YAML genesis file. Unknown fields are rejected.
func LoadCustomGenesis(path string) (*CustomGenesis, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read genesis file")
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var gen CustomGenesis
	if err := dec.Decode(&gen); err != nil {
		return nil, errors.Wrap(err, "decode genesis file")
	}
	return &gen, nil
}

func bigOr(v *math.HexOrDecimal256, def *big.Int) *big.Int {
	if v == nil {
		return new(big.Int).Set(def)
	}
	return (*big.Int)(v)
}

type resolvedToken struct {
	Token
	address farm.Address
}

// NewCustomNet create custom network genesis.
func NewCustomNet(gen *CustomGenesis) (*Genesis, error) {
	if gen.Owner == nil || gen.Owner.IsZero() {
		return nil, errors.New("owner is required")
	}
	owner := *gen.Owner

	supply := bigOr(gen.RewardToken.Supply, farm.RewardTokenSupply)
	kept := bigOr(gen.RewardToken.KeptBalance, farm.KeptBalance)
	if supply.Sign() < 0 || kept.Sign() < 0 {
		return nil, errors.New("reward token amounts must not be negative")
	}
	if kept.Cmp(supply) > 0 {
		return nil, errors.Errorf("kept balance %s exceeds supply %s", kept, supply)
	}

	// symbol -> address, the reward token is always known
	symbols := map[string]farm.Address{
		farm.RewardTokenSymbol: builtin.RewardToken.Address,
	}
	used := map[farm.Address]string{
		builtin.RewardToken.Address: farm.RewardTokenSymbol,
		builtin.TokenFarm.Address:   "farm",
	}
	claim := func(addr farm.Address, what string) error {
		if addr.IsZero() {
			return errors.Errorf("%s: zero address", what)
		}
		if other, ok := used[addr]; ok {
			return errors.Errorf("%s: address %v already used by %s", what, addr, other)
		}
		used[addr] = what
		return nil
	}

	tokens := make([]resolvedToken, 0, len(gen.Tokens))
	for _, t := range gen.Tokens {
		if t.Symbol == "" {
			return nil, errors.New("token symbol is required")
		}
		if _, ok := symbols[t.Symbol]; ok {
			return nil, errors.Errorf("duplicated token symbol %q", t.Symbol)
		}
		addr := farm.BytesToAddress([]byte(t.Symbol))
		if t.Address != nil {
			addr = *t.Address
		}
		if err := claim(addr, "token "+t.Symbol); err != nil {
			return nil, err
		}
		for _, a := range t.Allocations {
			if a.Amount == nil || (*big.Int)(a.Amount).Sign() < 0 {
				return nil, errors.Errorf("token %s: invalid allocation for %v", t.Symbol, a.Address)
			}
		}
		symbols[t.Symbol] = addr
		tokens = append(tokens, resolvedToken{t, addr})
	}

	feeds := make(map[farm.Address]Feed, len(gen.Feeds))
	feedOrder := make([]farm.Address, 0, len(gen.Feeds))
	for _, f := range gen.Feeds {
		if f.Name == "" {
			return nil, errors.New("feed name is required")
		}
		addr := farm.BytesToAddress([]byte(f.Name))
		if f.Address != nil {
			addr = *f.Address
		}
		if err := claim(addr, "feed "+f.Name); err != nil {
			return nil, err
		}
		if f.Answer == nil || (*big.Int)(f.Answer).Sign() < 0 {
			return nil, errors.Errorf("feed %s: answer must be a non-negative number", f.Name)
		}
		for _, sym := range f.Tokens {
			if _, ok := symbols[sym]; !ok {
				return nil, errors.Errorf("feed %s: unknown token %q", f.Name, sym)
			}
		}
		feeds[addr] = f
		feedOrder = append(feedOrder, addr)
	}

	allowed := make([]farm.Address, 0, len(gen.Allowed))
	for _, sym := range gen.Allowed {
		addr, ok := symbols[sym]
		if !ok {
			return nil, errors.Errorf("allowed: unknown token %q", sym)
		}
		allowed = append(allowed, addr)
	}

	builder := new(Builder).
		Timestamp(gen.LaunchTime).
		State(func(env *runtime.Env) error {
			glx := env.RewardToken()
			if err := glx.Initialize(farm.RewardTokenName, farm.RewardTokenSymbol, farm.RewardTokenDecimals); err != nil {
				return err
			}
			if err := glx.Mint(owner, supply); err != nil {
				return err
			}
			if err := glx.Transfer(owner, builtin.TokenFarm.Address, new(big.Int).Sub(supply, kept)); err != nil {
				return errors.WithMessage(err, "fund reward reserve")
			}
			return env.Farm().Initialize(owner, builtin.RewardToken.Address)
		}).
		State(func(env *runtime.Env) error {
			for _, t := range tokens {
				tk := env.Token(t.address)
				if err := tk.Initialize(t.Name, t.Symbol, t.Decimals); err != nil {
					return err
				}
				for _, a := range t.Allocations {
					if err := tk.Mint(a.Address, (*big.Int)(a.Amount)); err != nil {
						return errors.WithMessagef(err, "token %s: allocate to %v", t.Symbol, a.Address)
					}
				}
			}
			return nil
		}).
		State(func(env *runtime.Env) error {
			f := env.Farm()
			for _, addr := range feedOrder {
				feed := feeds[addr]
				if err := env.PriceFeed(addr).Initialize(feed.Decimals, (*big.Int)(feed.Answer), env.Now()); err != nil {
					return errors.WithMessagef(err, "feed %s", feed.Name)
				}
				for _, sym := range feed.Tokens {
					if err := f.SetPriceFeedContract(owner, symbols[sym], addr); err != nil {
						return err
					}
				}
			}
			for _, addr := range allowed {
				if err := f.AddAllowedTokens(owner, addr); err != nil {
					return err
				}
			}
			return nil
		})

	return newGenesis("customnet", builder)
}
