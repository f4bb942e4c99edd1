package web

const indexHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>coinpulse</title>
<style>
body { font-family: -apple-system, sans-serif; background: #0d1117; color: #e6edf3; margin: 2rem; }
h1 { font-size: 1.2rem; }
pre { background: #161b22; padding: 1rem; border-radius: 8px; overflow-x: auto; }
.up { color: #3fb950; } .down { color: #f85149; }
</style>
</head>
<body>
<h1>coinpulse</h1>
<div id="total"></div>
<pre id="insight">loading…</pre>
<pre id="assets"></pre>
<script>
async function load() {
  const [portfolio, insight] = await Promise.all([
    fetch('/api/portfolio').then(r => r.json()),
    fetch('/api/insight').then(r => r.json()),
  ]);
  render(portfolio);
  document.getElementById('insight').textContent = insight.text || 'no insight yet';
}
function render(p) {
  const cls = p.changePercent >= 0 ? 'up' : 'down';
  document.getElementById('total').innerHTML =
    '<h2>' + Number(p.totalValue).toFixed(2) +
    ' <span class="' + cls + '">' + Number(p.changePercent).toFixed(2) + '%</span></h2>';
  document.getElementById('assets').textContent =
    (p.assets || []).map(a => a.symbol + '  ' + a.quantity + ' @ ' + a.currentPrice +
      ' = ' + a.totalValue + (a.stale ? ' (cached)' : '')).join('\n');
}
const stream = new EventSource('/portfolio/stream');
stream.onmessage = (e) => render(JSON.parse(e.data));
load();
</script>
</body>
</html>`
