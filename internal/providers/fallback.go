package providers

// OfflineFallback is returned whenever a backend cannot produce an answer.
const OfflineFallback = `🍷 **Wine Recommendation** (Offline Mode)

Our sommelier is stepping away from the cellar for a moment, so here are the classic pairings:

**Red meat:** Cabernet Sauvignon or Malbec
**White meat or fish:** Chardonnay or Sauvignon Blanc
**Pasta:** Chianti or Pinot Grigio
**Spicy dishes:** Riesling or Gewürztraminer

Please try again shortly for a personalized recommendation.`
