// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tokenfarm

import (
	"github.com/vechain/tokenfarm/builtin/reverts"
	"github.com/vechain/tokenfarm/metrics"
)

const (
	opAddToken = "add_token"
	opSetFeed  = "set_feed"
	opStake    = "stake"
	opUnstake  = "unstake"
	opIssue    = "issue"
)

var (
	metricOperations = metrics.LazyLoadCounterVec("farm_operations_count", []string{"op", "status"})
	metricRewards    = metrics.LazyLoadCounter("farm_rewards_paid_count")
)

// operationCount counts op by outcome: success, reverted by the farm's rules, or failed on storage.
func operationCount(op string, err error) {
	status := "success"
	switch {
	case err == nil:
	case reverts.IsRevertErr(err):
		status = "reverted"
	default:
		status = "failed"
	}
	metricOperations().AddWithLabel(1, map[string]string{"op": op, "status": status})
}
