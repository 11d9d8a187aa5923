package providers

// dashboardHTML is the live dashboard page. It connects to /ws and renders
// booking and cancellation events as they arrive.
const dashboardHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Smart Care — Live Dashboard</title>
<style>
  body { font-family: 'Segoe UI', sans-serif; max-width: 860px; margin: 40px auto; padding: 0 20px; background: #f8fafc; color: #1f2937; }
  h1 { color: #667eea; }
  #status { padding: 6px 14px; border-radius: 16px; color: white; background: #9ca3af; display: inline-block; }
  #status.connected { background: #10b981; }
  .event { background: white; border-left: 4px solid #667eea; border-radius: 8px; padding: 14px; margin: 10px 0; box-shadow: 0 1px 3px rgba(0,0,0,.1); }
  .event.canceled { border-left-color: #ef4444; }
  .event.system { border-left-color: #f59e0b; }
  .meta { color: #6b7280; font-size: .85em; }
</style>
</head>
<body>
<h1>Smart Care Medical Center</h1>
<p><span id="status">connecting…</span></p>
<div id="events"></div>
<script>
  const status = document.getElementById('status');
  const events = document.getElementById('events');

  function addEvent(cls, html) {
    const div = document.createElement('div');
    div.className = 'event ' + cls;
    div.innerHTML = html;
    events.prepend(div);
  }

  function connect() {
    const ws = new WebSocket((location.protocol === 'https:' ? 'wss://' : 'ws://') + location.host + '/ws');
    ws.onopen = () => { status.textContent = 'connected'; status.className = 'connected'; };
    ws.onclose = () => { status.textContent = 'disconnected'; status.className = ''; setTimeout(connect, 2000); };
    ws.onmessage = (e) => {
      const msg = JSON.parse(e.data);
      if (msg.event === 'new_booking') {
        const d = msg.data;
        addEvent('', '<strong>New booking</strong> — ' + d.patient + '<br>' + d.time + ' · ' + d.reason +
          '<br><span class="meta">#' + d.id + ' · ' + d.timestamp + '</span>');
      } else if (msg.event === 'booking_canceled') {
        const d = msg.data;
        addEvent('canceled', '<strong>Canceled</strong> — ' + d.patient + '<br>' + d.time +
          '<br><span class="meta">#' + d.id + ' · ' + d.timestamp + '</span>');
      } else if (msg.event === 'system_message') {
        const d = msg.data;
        addEvent('system', '<strong>' + d.level + '</strong> — ' + d.message +
          '<br><span class="meta">' + d.timestamp + '</span>');
      }
    };
    setInterval(() => { if (ws.readyState === WebSocket.OPEN) ws.send('ping'); }, 30000);
  }
  connect();
</script>
</body>
</html>`
