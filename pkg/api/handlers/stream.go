package handlers

import (
	"net/http"

	"github.com/ballisto/ballisto/pkg/log"
	"github.com/ballisto/ballisto/pkg/predict"
	"github.com/ballisto/ballisto/pkg/store"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"
)

// HandlePredictStream upgrades to a websocket, reads one PredictRequest,
// and streams the trajectory one sample per message, ending with the
// prediction summary.
func HandlePredictStream() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := websocket.Accept(w, r, nil)
		if err != nil {
			log.Error("failed to accept websocket connection: %v", err)
			return
		}
		defer conn.CloseNow()

		ctx := r.Context()
		var req PredictRequest
		if err := wsjson.Read(ctx, conn, &req); err != nil {
			log.Error("failed to read stream request: %v", err)
			return
		}
		cfg, err := projectileConfig(req)
		if err != nil {
			_ = conn.Close(websocket.StatusUnsupportedData, err.Error())
			return
		}

		result := predict.PredictProjectile(cfg)
		for _, sample := range wireTrajectory(result.Trajectory) {
			if err := wsjson.Write(ctx, conn, sample); err != nil {
				log.Debug("stream client gone: %v", err)
				return
			}
		}
		summary := PredictResponse{
			Kind:           store.KindProjectile,
			Valid:          result.Valid,
			ImpactTime:     result.ImpactTime,
			ImpactPosition: fromVec(result.ImpactPosition),
			Samples:        len(result.Trajectory),
		}
		if err := wsjson.Write(ctx, conn, summary); err != nil {
			log.Debug("stream client gone: %v", err)
			return
		}
		_ = conn.Close(websocket.StatusNormalClosure, "")
	}
}
